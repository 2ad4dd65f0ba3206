package report

import (
	"time"

	"github.com/empmanager/personnel-management/internal/auth"
)

// DashboardStats is the landing-page summary. The department count is
// global on purpose: the original dashboard shows the size of the program,
// not of the caller's slice of it. Every other figure is scope-filtered.
type DashboardStats struct {
	TotalEmployees   int64 `json:"total_employees"`
	TotalDepartments int64 `json:"total_departments"`
	PresentToday     int64 `json:"present_today"`
	OnLeaveToday     int64 `json:"on_leave_today"`
}

// Report rows are flat, presentation-ready projections of the scoped
// entities. Rendering (spreadsheet, PDF) is the consumer's concern.

type EmployeeRow struct {
	Matricule  string `json:"matricule"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	Direction  string `json:"direction"`
	Position   string `json:"position"`
	Status     string `json:"status"`
	HireDate   string `json:"hire_date"`
}

type LeaveRow struct {
	Employee   string `json:"employee"`
	Type       string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Days       int    `json:"days"`
	Status     string `json:"status"`
	ApprovedBy string `json:"approved_by,omitempty"`
}

type AttendanceRow struct {
	Employee    string  `json:"employee"`
	Date        string  `json:"date"`
	CheckIn     string  `json:"check_in,omitempty"`
	CheckOut    string  `json:"check_out,omitempty"`
	HoursWorked float64 `json:"hours_worked"`
	Status      string  `json:"status"`
}

type ServiceAPI interface {
	Dashboard(rc auth.RoleContext) (*DashboardStats, error)
	EmployeeReport(rc auth.RoleContext) ([]EmployeeRow, error)
	LeaveReport(rc auth.RoleContext) ([]LeaveRow, error)
	AttendanceReport(rc auth.RoleContext) ([]AttendanceRow, error)
}

// StatsRepository answers the dashboard counters directly in SQL.
type StatsRepository interface {
	CountEmployees(rc auth.RoleContext) (int64, error)
	CountDepartments() (int64, error)
	CountPresent(rc auth.RoleContext, date time.Time) (int64, error)
	CountOnApprovedLeave(rc auth.RoleContext, date time.Time) (int64, error)
}
