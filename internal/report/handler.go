package report

import (
	"net/http"

	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/empmanager/personnel-management/internal/transport"
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

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	stats, err := h.Service.Dashboard(rc)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) EmployeeReport(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	rows, err := h.Service.EmployeeReport(rc)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) LeaveReport(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	rows, err := h.Service.LeaveReport(rc)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.roleContext(w, r)
	if !ok {
		return
	}

	rows, err := h.Service.AttendanceReport(rc)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}
