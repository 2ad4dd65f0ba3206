package attendance

import (
	"errors"
	"log/slog"
	"time"

	"github.com/empmanager/personnel-management/internal"
	"github.com/empmanager/personnel-management/internal/auth"
	"gorm.io/gorm"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "attendance_service"),
		now:    time.Now,
	}
}

func (s *Service) ListAttendance(rc auth.RoleContext) ([]Attendance, error) {
	records, err := s.repo.List(rc)
	if err != nil {
		s.logger.Error("failed to list attendance", "role", rc.Role, "error", err)
		return nil, internal.NewInternalError("failed to list attendance records", err)
	}
	return records, nil
}

func (s *Service) Today(rc auth.RoleContext) ([]Attendance, error) {
	records, err := s.repo.ListByDate(rc, dateOnly(s.now()))
	if err != nil {
		s.logger.Error("failed to list today's attendance", "role", rc.Role, "error", err)
		return nil, internal.NewInternalError("failed to list attendance records", err)
	}
	return records, nil
}

// ByEmployee fetches one employee's records and narrows them with the shared
// in-memory predicate, so the visibility rule matches the list queries
// exactly.
func (s *Service) ByEmployee(rc auth.RoleContext, employeeID int64) ([]Attendance, error) {
	records, err := s.repo.ListByEmployee(employeeID)
	if err != nil {
		s.logger.Error("failed to list attendance by employee", "employee_id", employeeID, "error", err)
		return nil, internal.NewInternalError("failed to list attendance records", err)
	}

	pointers := make([]*Attendance, len(records))
	for i := range records {
		pointers[i] = &records[i]
	}
	visible := auth.FilterByScope(pointers, rc)

	out := make([]Attendance, len(visible))
	for i, p := range visible {
		out[i] = *p
	}
	return out, nil
}

func (s *Service) GetAttendance(rc auth.RoleContext, id int64) (*Attendance, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAttendanceNotFound
		}
		s.logger.Error("failed to get attendance", "attendance_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get attendance record", err)
	}
	if !rc.Allows(a) {
		return nil, internal.ErrAttendanceNotFound
	}
	return a, nil
}

func (s *Service) RecordAttendance(rc auth.RoleContext, dto RecordAttendanceDTO) (*Attendance, error) {
	if !rc.IsStaff() && rc.Role != auth.RoleEnterprise {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	date := dateOnly(dto.Date)
	if existing, err := s.repo.GetByEmployeeAndDate(dto.EmployeeID, date); err == nil && existing != nil {
		return nil, internal.ErrDuplicateAttendance
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to check attendance uniqueness", err)
	}

	status := dto.Status
	if status == "" {
		status = StatusPresent
	}
	a := &Attendance{
		EmployeeID: dto.EmployeeID,
		Date:       date,
		CheckIn:    dto.CheckIn,
		CheckOut:   dto.CheckOut,
		Status:     status,
		Notes:      dto.Notes,
	}
	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create attendance", "employee_id", dto.EmployeeID, "error", err)
		return nil, internal.NewInternalError("failed to create attendance record", err)
	}

	s.logger.Info("attendance recorded",
		"attendance_id", a.ID,
		"employee_id", a.EmployeeID,
		"date", a.Date.Format("2006-01-02"),
		"status", a.Status)
	return s.repo.GetByID(a.ID)
}

func (s *Service) UpdateAttendance(rc auth.RoleContext, id int64, dto UpdateAttendanceDTO) (*Attendance, error) {
	if !rc.IsStaff() && rc.Role != auth.RoleEnterprise {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.GetAttendance(rc, id)
	if err != nil {
		return nil, err
	}

	if dto.CheckIn != nil {
		a.CheckIn = dto.CheckIn
	}
	if dto.CheckOut != nil {
		a.CheckOut = dto.CheckOut
	}
	if dto.Status != nil {
		a.Status = *dto.Status
	}
	if dto.Notes != nil {
		a.Notes = *dto.Notes
	}
	if a.CheckIn != nil && a.CheckOut != nil && !a.CheckOut.After(*a.CheckIn) {
		return nil, internal.NewValidationFieldError("check_out", "check-out must be after check-in", internal.ErrCodeValidationFailed)
	}

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update attendance", "attendance_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update attendance record", err)
	}
	return a, nil
}

func (s *Service) DeleteAttendance(rc auth.RoleContext, id int64) error {
	if !rc.IsStaff() {
		return internal.ErrForbidden
	}

	if _, err := s.GetAttendance(rc, id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete attendance", "attendance_id", id, "error", err)
		return internal.NewInternalError("failed to delete attendance record", err)
	}

	s.logger.Info("attendance deleted", "attendance_id", id)
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
