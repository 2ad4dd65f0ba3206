package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/empmanager/personnel-management/internal/attendance"
	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/empmanager/personnel-management/internal/department"
	"github.com/empmanager/personnel-management/internal/direction"
	"github.com/empmanager/personnel-management/internal/employee"
	"github.com/empmanager/personnel-management/internal/leave"
	"github.com/empmanager/personnel-management/internal/notification"
	"github.com/empmanager/personnel-management/internal/report"
	"github.com/empmanager/personnel-management/internal/transport/middleware"
	"github.com/empmanager/personnel-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	Employee     *employee.Handler
	Department   *department.Handler
	Direction    *direction.Handler
	Leave        *leave.Handler
	Attendance   *attendance.Handler
	Notification *notification.Handler
	Report       *report.Handler
}

// RegisterAllRoutes mounts the full API under /api/v1. The OpenAPI document
// and swagger UI sit at the root, outside the versioned prefix. Validator is
// optional; when present every in-contract request is checked before routing.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, validator *middleware.OpenAPIValidator, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRoleAuthorization(logger)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery)
	router.Use(middleware.Logging(logger))
	if validator != nil {
		router.Use(validator.Middleware)
	}

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
		})

		// everything else needs a valid bearer token
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/auth/me", h.Auth.Me)
			pr.Post("/auth/change-password", h.Auth.ChangePassword)

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employee.ListEmployees)
				er.Get("/by-department", h.Employee.EmployeesByDepartment)
				er.Get("/{id}", h.Employee.GetEmployee)
				er.Get("/{id}/attendance", h.Attendance.ByEmployee)
				er.Get("/{id}/balance", h.Leave.GetBalance)
				er.Get("/{id}/notifications", h.Notification.ListByEmployee)

				er.Group(func(sr chi.Router) {
					sr.Use(rbac.RequireStaff())
					sr.Post("/", h.Employee.CreateEmployee)
					sr.Put("/{id}", h.Employee.UpdateEmployee)
				})
				er.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			})

			pr.Route("/departments", func(dr chi.Router) {
				dr.Get("/", h.Department.ListDepartments)
				dr.Get("/{id}", h.Department.GetDepartment)

				dr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Post("/", h.Department.CreateDepartment)
					ar.Put("/{id}", h.Department.UpdateDepartment)
					ar.Delete("/{id}", h.Department.DeleteDepartment)
				})
			})

			pr.Route("/directions", func(dr chi.Router) {
				dr.Get("/", h.Direction.ListDirections)
				dr.Get("/{id}", h.Direction.GetDirection)
			})

			pr.Route("/leaves", func(lr chi.Router) {
				lr.Get("/", h.Leave.ListLeaves)
				lr.Post("/", h.Leave.SubmitLeave)
				lr.Get("/pending", h.Leave.ListPending)
				lr.Get("/{id}", h.Leave.GetLeave)
				lr.Delete("/{id}", h.Leave.DeleteLeave)

				lr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireApprover())
					ar.Patch("/{id}/approve", h.Leave.ApproveLeave)
				})
				lr.Group(func(sr chi.Router) {
					sr.Use(rbac.RequireStaff())
					sr.Patch("/{id}/reject", h.Leave.RejectLeave)
				})
			})

			pr.Route("/attendance", func(ar chi.Router) {
				ar.Get("/", h.Attendance.ListAttendance)
				ar.Get("/today", h.Attendance.Today)
				ar.Get("/{id}", h.Attendance.GetAttendance)
				ar.Post("/", h.Attendance.RecordAttendance)
				ar.Patch("/{id}", h.Attendance.UpdateAttendance)

				ar.Group(func(sr chi.Router) {
					sr.Use(rbac.RequireStaff())
					sr.Delete("/{id}", h.Attendance.DeleteAttendance)
				})
			})

			pr.Route("/notifications", func(nr chi.Router) {
				nr.Use(rbac.RequireStaff())
				nr.Get("/due", h.Notification.ListDue)
				nr.Post("/{id}/ack", h.Notification.Acknowledge)
			})

			pr.Get("/dashboard/stats", h.Report.Dashboard)

			pr.Route("/reports", func(rr chi.Router) {
				rr.Use(rbac.RequireStaff())
				rr.Get("/employees", h.Report.EmployeeReport)
				rr.Get("/leaves", h.Report.LeaveReport)
				rr.Get("/attendance", h.Report.AttendanceReport)
			})
		})
	})
}
