package attendance

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

func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	records, err := h.Service.ListAttendance(rc)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	records, err := h.Service.Today(rc)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) ByEmployee(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	records, err := h.Service.ByEmployee(rc, employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid attendance id")
		return
	}

	a, err := h.Service.GetAttendance(rc, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	var dto RecordAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.RecordAttendance(rc, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid attendance id")
		return
	}

	var dto UpdateAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateAttendance(rc, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid attendance id")
		return
	}

	if err := h.Service.DeleteAttendance(rc, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "attendance record deleted"})
}
