package leave

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/empmanager/personnel-management/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     svc,
	}
}

func (h *Handler) roleContext(w http.ResponseWriter, r *http.Request) (auth.RoleContext, bool) {
	rc, ok := auth.RoleContextFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
	}
	return rc, ok
}

func (h *Handler) leaveID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid leave id")
		return 0, false
	}
	return id, true
}

func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	leaves, err := h.Service.ListLeaves(rc)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, leaves)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	leaves, err := h.Service.ListPending(rc)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, leaves)
}

func (h *Handler) GetLeave(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}
	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.GetLeave(rc, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	var dto SubmitLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.SubmitLeave(rc, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}
	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.ApproveLeave(rc, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}
	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.RejectLeave(rc, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}
	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteLeave(rc, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "leave request deleted"})
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	balance, err := h.Service.GetBalance(rc, employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, balance)
}
