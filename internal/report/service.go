package report

import (
	"log/slog"
	"time"

	"github.com/empmanager/personnel-management/internal"
	"github.com/empmanager/personnel-management/internal/attendance"
	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/empmanager/personnel-management/internal/employee"
	"github.com/empmanager/personnel-management/internal/leave"
)

type Service struct {
	stats      StatsRepository
	employees  employee.ServiceAPI
	leaves     leave.ServiceAPI
	attendance attendance.ServiceAPI
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(
	stats StatsRepository,
	employees employee.ServiceAPI,
	leaves leave.ServiceAPI,
	attendanceSvc attendance.ServiceAPI,
	logger *slog.Logger,
) *Service {
	return &Service{
		stats:      stats,
		employees:  employees,
		leaves:     leaves,
		attendance: attendanceSvc,
		logger:     logger.With("component", "report_service"),
		now:        time.Now,
	}
}

func (s *Service) Dashboard(rc auth.RoleContext) (*DashboardStats, error) {
	today := dateOnly(s.now())

	totalEmployees, err := s.stats.CountEmployees(rc)
	if err != nil {
		return nil, s.statsError("employees", err)
	}
	totalDepartments, err := s.stats.CountDepartments()
	if err != nil {
		return nil, s.statsError("departments", err)
	}
	present, err := s.stats.CountPresent(rc, today)
	if err != nil {
		return nil, s.statsError("present", err)
	}
	onLeave, err := s.stats.CountOnApprovedLeave(rc, today)
	if err != nil {
		return nil, s.statsError("on_leave", err)
	}

	return &DashboardStats{
		TotalEmployees:   totalEmployees,
		TotalDepartments: totalDepartments,
		PresentToday:     present,
		OnLeaveToday:     onLeave,
	}, nil
}

func (s *Service) statsError(counter string, err error) error {
	s.logger.Error("failed to compute dashboard counter", "counter", counter, "error", err)
	return internal.NewInternalError("failed to compute dashboard statistics", err)
}

func (s *Service) EmployeeReport(rc auth.RoleContext) ([]EmployeeRow, error) {
	employees, err := s.employees.ListEmployees(rc)
	if err != nil {
		return nil, err
	}

	rows := make([]EmployeeRow, 0, len(employees))
	for i := range employees {
		e := &employees[i]
		rows = append(rows, EmployeeRow{
			Matricule:  e.Matricule,
			FullName:   e.FullName(),
			Department: e.DepartmentName,
			Direction:  e.Direction,
			Position:   e.Position,
			Status:     string(e.Status),
			HireDate:   e.HireDate.Format("2006-01-02"),
		})
	}
	return rows, nil
}

func (s *Service) LeaveReport(rc auth.RoleContext) ([]LeaveRow, error) {
	leaves, err := s.leaves.ListLeaves(rc)
	if err != nil {
		return nil, err
	}

	rows := make([]LeaveRow, 0, len(leaves))
	for i := range leaves {
		l := &leaves[i]
		rows = append(rows, LeaveRow{
			Employee:   l.EmployeeName,
			Type:       string(l.Type),
			StartDate:  l.StartDate.Format("2006-01-02"),
			EndDate:    l.EndDate.Format("2006-01-02"),
			Days:       l.DaysCount(),
			Status:     string(l.Status),
			ApprovedBy: l.ApprovedByName,
		})
	}
	return rows, nil
}

func (s *Service) AttendanceReport(rc auth.RoleContext) ([]AttendanceRow, error) {
	records, err := s.attendance.ListAttendance(rc)
	if err != nil {
		return nil, err
	}

	rows := make([]AttendanceRow, 0, len(records))
	for i := range records {
		a := &records[i]
		row := AttendanceRow{
			Employee:    a.EmployeeName,
			Date:        a.Date.Format("2006-01-02"),
			HoursWorked: a.HoursWorked(),
			Status:      string(a.Status),
		}
		if a.CheckIn != nil {
			row.CheckIn = a.CheckIn.Format("15:04")
		}
		if a.CheckOut != nil {
			row.CheckOut = a.CheckOut.Format("15:04")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
