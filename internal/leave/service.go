package leave

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/empmanager/personnel-management/internal"
	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/empmanager/personnel-management/internal/core/events"
	"gorm.io/gorm"
)

// EmployeeInfo is the slice of a personnel record the workflow needs:
// identity for ownership checks and the visibility scope fields.
type EmployeeInfo struct {
	ID           int64
	FullName     string
	DepartmentID int64
	Direction    string
	UserID       *int64
}

// EmployeeDirectory resolves personnel records for submission. Kept as a
// consumer-side interface so the workflow does not depend on the employee
// package.
type EmployeeDirectory interface {
	EmployeeByID(id int64) (*EmployeeInfo, error)
	EmployeeByUserID(userID int64) (*EmployeeInfo, error)
}

type Service struct {
	repo       Repository
	employees  EmployeeDirectory
	calculator *BalanceCalculator
	bus        *events.EventBus
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo Repository, employees EmployeeDirectory, policy Policy, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		employees:  employees,
		calculator: NewBalanceCalculator(policy),
		bus:        bus,
		logger:     logger.With("component", "leave_service"),
		now:        time.Now,
	}
}

func (s *Service) ListLeaves(rc auth.RoleContext) ([]Leave, error) {
	leaves, err := s.repo.List(rc)
	if err != nil {
		s.logger.Error("failed to list leaves", "role", rc.Role, "error", err)
		return nil, internal.NewInternalError("failed to list leave requests", err)
	}
	return leaves, nil
}

// ListPending returns the scope-visible requests still awaiting a decision,
// in either approval tier.
func (s *Service) ListPending(rc auth.RoleContext) ([]Leave, error) {
	leaves, err := s.repo.ListPending(rc)
	if err != nil {
		s.logger.Error("failed to list pending leaves", "role", rc.Role, "error", err)
		return nil, internal.NewInternalError("failed to list pending leave requests", err)
	}
	return leaves, nil
}

func (s *Service) GetLeave(rc auth.RoleContext, id int64) (*Leave, error) {
	return s.visibleLeave(rc, id)
}

// visibleLeave loads a request and applies the scope rule. A request outside
// the caller's scope is indistinguishable from a missing one.
func (s *Service) visibleLeave(rc auth.RoleContext, id int64) (*Leave, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrLeaveNotFound
		}
		s.logger.Error("failed to get leave", "leave_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get leave request", err)
	}
	if !rc.Allows(l) {
		return nil, internal.ErrLeaveNotFound
	}
	return l, nil
}

// SubmitLeave creates a request in the pending state. All validation runs
// before the write: date ordering, then the effective-balance check for paid
// leave. Nothing is persisted on failure.
func (s *Service) SubmitLeave(rc auth.RoleContext, dto SubmitLeaveDTO) (*Leave, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.resolveSubject(rc, dto.EmployeeID)
	if err != nil {
		return nil, err
	}

	l := &Leave{
		EmployeeID: emp.ID,
		Type:       dto.Type,
		StartDate:  truncateToDay(dto.StartDate),
		EndDate:    truncateToDay(dto.EndDate),
		Reason:     dto.Reason,
		Status:     StatusPending,
	}

	if l.Type.CountsAgainstAllowance() {
		// the effective balance is always the current year's account, even
		// when the requested dates fall in a later year
		balance, err := s.balanceForYear(emp.ID, s.now().Year())
		if err != nil {
			return nil, err
		}
		requested := l.DaysCount()
		if requested > balance.Available() {
			return nil, internal.NewInsufficientBalanceError(balance.Balance, balance.Pending, requested)
		}
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Error("failed to create leave", "employee_id", emp.ID, "error", err)
		return nil, internal.NewInternalError("failed to create leave request", err)
	}

	s.logger.Info("leave submitted",
		"leave_id", l.ID,
		"employee_id", emp.ID,
		"leave_type", l.Type,
		"days", l.DaysCount())
	return s.repo.GetByID(l.ID)
}

// resolveSubject determines whose leave is being submitted. Employee
// principals always act on their own personnel record; staff name any
// employee; enterprise accounts only employees of their own department.
func (s *Service) resolveSubject(rc auth.RoleContext, employeeID int64) (*EmployeeInfo, error) {
	if rc.Role == auth.RoleEmployee {
		emp, err := s.employees.EmployeeByUserID(rc.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, internal.ErrEmployeeNotFound
			}
			return nil, internal.NewInternalError("failed to resolve employee", err)
		}
		if employeeID != 0 && employeeID != emp.ID {
			return nil, internal.ErrForbidden
		}
		return emp, nil
	}

	if employeeID == 0 {
		return nil, internal.NewValidationFieldError("employee_id", "employee is required", internal.ErrCodeValidationFailed)
	}
	emp, err := s.employees.EmployeeByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, internal.NewInternalError("failed to resolve employee", err)
	}
	if rc.Role == auth.RoleEnterprise && emp.DepartmentID != rc.DepartmentID {
		return nil, internal.ErrForbidden
	}
	return emp, nil
}

// ApproveLeave advances a request one tier, according to the caller's role.
//
// Admin approves from any non-terminal state and short-circuits the manager
// tier when it never ran. Enterprise approves only what a manager already
// validated. A manager performs the first-tier validation only. Employees
// cannot approve at all, their own requests included.
func (s *Service) ApproveLeave(rc auth.RoleContext, id int64) (*Leave, error) {
	if !rc.IsStaff() && rc.Role != auth.RoleEnterprise {
		return nil, internal.ErrForbidden
	}

	l, err := s.visibleLeave(rc, id)
	if err != nil {
		return nil, err
	}
	if l.Status.IsTerminal() {
		return nil, internal.ErrLeaveAlreadyProcessed
	}

	approver := rc.UserID
	var update StatusUpdate
	final := false

	switch rc.Role {
	case auth.RoleAdmin:
		update = StatusUpdate{
			Status:            StatusApproved,
			ApprovedBy:        &approver,
			ManagerApprovedBy: &approver,
			AllowedFrom:       []Status{StatusPending, StatusManagerApproved},
		}
		final = true
	case auth.RoleEnterprise:
		if l.Status != StatusManagerApproved {
			return nil, internal.ErrManagerApprovalNeeded
		}
		update = StatusUpdate{
			Status:      StatusApproved,
			ApprovedBy:  &approver,
			AllowedFrom: []Status{StatusManagerApproved},
		}
		final = true
	default: // manager
		if l.Status != StatusPending {
			return nil, internal.ErrLeaveAlreadyProcessed
		}
		update = StatusUpdate{
			Status:            StatusManagerApproved,
			ManagerApprovedBy: &approver,
			AllowedFrom:       []Status{StatusPending},
		}
	}

	if err := s.applyTransition(l.ID, update); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(l.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to reload leave request", err)
	}

	s.logger.Info("leave transition applied",
		"leave_id", l.ID,
		"status", updated.Status,
		"actor_id", rc.UserID,
		"role", rc.Role)

	if final {
		event := events.NewLeaveApprovedEvent(updated.ID, updated.EmployeeID, updated.StartDate, updated.EndDate, rc.UserID)
		if err := s.bus.Publish(context.Background(), event); err != nil {
			s.logger.Error("failed to publish leave approved event", "leave_id", l.ID, "error", err)
		}
	}
	return updated, nil
}

// RejectLeave closes a request negatively. Staff only, from either
// non-terminal state; the deciding principal is recorded in ApprovedBy
// whichever tier it sat in.
func (s *Service) RejectLeave(rc auth.RoleContext, id int64) (*Leave, error) {
	if !rc.IsStaff() {
		return nil, internal.ErrForbidden
	}

	l, err := s.visibleLeave(rc, id)
	if err != nil {
		return nil, err
	}
	if l.Status.IsTerminal() {
		return nil, internal.ErrLeaveAlreadyProcessed
	}

	actor := rc.UserID
	update := StatusUpdate{
		Status:      StatusRejected,
		ApprovedBy:  &actor,
		AllowedFrom: []Status{StatusPending, StatusManagerApproved},
	}
	if err := s.applyTransition(l.ID, update); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(l.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to reload leave request", err)
	}

	s.logger.Info("leave rejected", "leave_id", l.ID, "actor_id", rc.UserID)

	event := events.NewLeaveRejectedEvent(updated.ID, updated.EmployeeID, rc.UserID)
	if err := s.bus.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish leave rejected event", "leave_id", l.ID, "error", err)
	}
	return updated, nil
}

// applyTransition performs the guarded write. A zero row count means another
// request won the race and the state is no longer in the allowed set.
func (s *Service) applyTransition(id int64, update StatusUpdate) error {
	affected, err := s.repo.UpdateStatus(id, update)
	if err != nil {
		s.logger.Error("failed to update leave status", "leave_id", id, "error", err)
		return internal.NewInternalError("failed to update leave request", err)
	}
	if affected == 0 {
		return internal.ErrLeaveAlreadyProcessed
	}
	return nil
}

// DeleteLeave removes a request unless it reached the approved state:
// approved leave is immutable history.
func (s *Service) DeleteLeave(rc auth.RoleContext, id int64) error {
	l, err := s.visibleLeave(rc, id)
	if err != nil {
		return err
	}
	if l.Status == StatusApproved {
		return internal.ErrApprovedLeaveImmutable
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete leave", "leave_id", id, "error", err)
		return internal.NewInternalError("failed to delete leave request", err)
	}

	s.logger.Info("leave deleted", "leave_id", id, "actor_id", rc.UserID)
	return nil
}

// GetBalance reports the yearly paid-leave account of an employee. Employee
// principals may only ask for their own.
func (s *Service) GetBalance(rc auth.RoleContext, employeeID int64) (*Balance, error) {
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

	balance, err := s.balanceForYear(emp.ID, s.now().Year())
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

func (s *Service) balanceForYear(employeeID int64, year int) (Balance, error) {
	records, err := s.repo.ListPaidByEmployeeYear(employeeID, year)
	if err != nil {
		s.logger.Error("failed to load leave records", "employee_id", employeeID, "year", year, "error", err)
		return Balance{}, internal.NewInternalError("failed to compute leave balance", err)
	}
	return s.calculator.Compute(records, year), nil
}
