package notification

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/empmanager/personnel-management/internal"
	"github.com/empmanager/personnel-management/internal/auth"
	"gorm.io/gorm"
)

type Service struct {
	repo      Repository
	employees EmployeeDirectory
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, employees EmployeeDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		logger:    logger.With("component", "notification_service"),
		now:       time.Now,
	}
}

// ScheduleLeaveReminders creates the J-7 and J-1 alarms for an approved
// leave. Each alarm is keyed (leave, type), so replays are no-ops. Trigger
// dates already in the past are still created; they fire on the next worker
// pass.
func (s *Service) ScheduleLeaveReminders(leaveID, employeeID int64, startDate time.Time) error {
	reminders := []struct {
		kind   ReminderType
		offset int
		label  string
	}{
		{ReminderWeekBefore, -7, "one week"},
		{ReminderDayBefore, -1, "one day"},
	}

	for _, r := range reminders {
		existing, err := s.repo.GetByLeaveAndType(leaveID, r.kind)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewInternalError("failed to check existing reminder", err)
		}
		if existing != nil {
			continue
		}

		n := &LeaveNotification{
			LeaveID:     leaveID,
			EmployeeID:  employeeID,
			Type:        r.kind,
			TriggerDate: startDate.AddDate(0, 0, r.offset),
			Message: fmt.Sprintf("leave starting %s begins in %s",
				startDate.Format("2006-01-02"), r.label),
		}
		if err := s.repo.Create(n); err != nil {
			s.logger.Error("failed to create leave reminder",
				"leave_id", leaveID,
				"type", r.kind,
				"error", err)
			return internal.NewInternalError("failed to create leave reminder", err)
		}

		s.logger.Info("leave reminder scheduled",
			"leave_id", leaveID,
			"employee_id", employeeID,
			"type", r.kind,
			"trigger_date", n.TriggerDate.Format("2006-01-02"))
	}
	return nil
}

func (s *Service) ListDue() ([]LeaveNotification, error) {
	due, err := s.repo.ListDue(s.now())
	if err != nil {
		s.logger.Error("failed to list due notifications", "error", err)
		return nil, internal.NewInternalError("failed to list due notifications", err)
	}
	return due, nil
}

// ListByEmployee returns one employee's reminders, subject to the caller's
// visibility scope. Reminders disclose approved-leave dates, so the rule
// matches the other per-employee reads.
func (s *Service) ListByEmployee(rc auth.RoleContext, employeeID int64) ([]LeaveNotification, error) {
	emp, err := s.employees.EmployeeByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, internal.NewInternalError("failed to resolve employee", err)
	}

	switch rc.Role {
	case auth.RoleAdmin, auth.RoleManager:
		// staff may inspect anyone
	case auth.RoleEnterprise:
		if emp.DepartmentID != rc.DepartmentID {
			return nil, internal.ErrForbidden
		}
	default:
		if emp.UserID == nil || *emp.UserID != rc.UserID {
			return nil, internal.ErrForbidden
		}
	}

	notifications, err := s.repo.ListByEmployee(employeeID)
	if err != nil {
		s.logger.Error("failed to list notifications", "employee_id", employeeID, "error", err)
		return nil, internal.NewInternalError("failed to list notifications", err)
	}
	return notifications, nil
}

// Acknowledge marks a fired alarm as sent.
func (s *Service) Acknowledge(id int64) (*LeaveNotification, error) {
	n, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrNotificationNotFound
		}
		return nil, internal.NewInternalError("failed to get notification", err)
	}
	if n.Sent {
		return n, nil
	}

	sentAt := s.now()
	n.Sent = true
	n.SentAt = &sentAt
	if err := s.repo.Update(n); err != nil {
		s.logger.Error("failed to acknowledge notification", "notification_id", id, "error", err)
		return nil, internal.NewInternalError("failed to acknowledge notification", err)
	}
	return n, nil
}
