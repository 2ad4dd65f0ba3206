package leave

import (
	"time"

	"github.com/empmanager/personnel-management/internal/auth"
)

type Status string

const (
	StatusPending         Status = "pending"
	StatusManagerApproved Status = "manager_approved"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
)

// IsTerminal reports whether the status admits no further transition.
// Approved and rejected requests are immutable history.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Type string

const (
	TypePaid     Type = "paid"
	TypeSick     Type = "sick"
	TypeUnpaid   Type = "unpaid"
	TypeParental Type = "parental"
	TypeOther    Type = "other"
)

func (t Type) IsValid() bool {
	switch t {
	case TypePaid, TypeSick, TypeUnpaid, TypeParental, TypeOther:
		return true
	}
	return false
}

// CountsAgainstAllowance reports whether days of this type consume the
// annual allowance. Only paid leave does; sick, unpaid, parental and other
// are deliberately neutral.
func (t Type) CountsAgainstAllowance() bool {
	return t == TypePaid
}

// Leave is a time-off request moving through the two-tier approval workflow:
// pending -> manager_approved -> approved, with rejected reachable from
// either non-terminal state.
type Leave struct {
	ID                int64      `json:"id" gorm:"primaryKey"`
	EmployeeID        int64      `json:"employee_id" gorm:"column:employee_id;not null"`
	Type              Type       `json:"leave_type" gorm:"column:leave_type;not null"`
	StartDate         time.Time  `json:"start_date" gorm:"not null"`
	EndDate           time.Time  `json:"end_date" gorm:"not null"`
	Reason            string     `json:"reason"`
	Status            Status     `json:"status" gorm:"default:pending"`
	ManagerApprovedBy *int64     `json:"manager_approved_by,omitempty" gorm:"column:manager_approved_by"`
	ApprovedBy        *int64     `json:"approved_by,omitempty" gorm:"column:approved_by"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Read-only snapshot columns resolved by the repository join on the
	// employees table. They carry the visibility scope of the record so the
	// shared filtering rule applies without loading the employee aggregate.
	EmployeeName         string `json:"employee_name,omitempty" gorm:"->;column:employee_name"`
	EmployeeDepartmentID int64  `json:"-" gorm:"->;column:employee_department_id"`
	EmployeeDirection    string `json:"-" gorm:"->;column:employee_direction"`
	EmployeeUserID       *int64 `json:"-" gorm:"->;column:employee_user_id"`

	ManagerApprovedByName string `json:"manager_approved_by_name,omitempty" gorm:"->;column:manager_approved_by_name"`
	ApprovedByName        string `json:"approved_by_name,omitempty" gorm:"->;column:approved_by_name"`
}

func (Leave) TableName() string {
	return "leaves"
}

// DaysCount is inclusive of both endpoints: a single-day leave counts 1.
func (l *Leave) DaysCount() int {
	start := truncateToDay(l.StartDate)
	end := truncateToDay(l.EndDate)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (l *Leave) DepartmentRef() (int64, bool) {
	if l.EmployeeDepartmentID == 0 {
		return 0, false
	}
	return l.EmployeeDepartmentID, true
}

func (l *Leave) DirectionRef() string {
	return l.EmployeeDirection
}

func (l *Leave) OwnerRef() (int64, bool) {
	if l.EmployeeUserID == nil {
		return 0, false
	}
	return *l.EmployeeUserID, true
}

type ServiceAPI interface {
	ListLeaves(rc auth.RoleContext) ([]Leave, error)
	ListPending(rc auth.RoleContext) ([]Leave, error)
	GetLeave(rc auth.RoleContext, id int64) (*Leave, error)
	SubmitLeave(rc auth.RoleContext, dto SubmitLeaveDTO) (*Leave, error)
	ApproveLeave(rc auth.RoleContext, id int64) (*Leave, error)
	RejectLeave(rc auth.RoleContext, id int64) (*Leave, error)
	DeleteLeave(rc auth.RoleContext, id int64) error
	GetBalance(rc auth.RoleContext, employeeID int64) (*Balance, error)
}

// StatusUpdate is the write half of a workflow transition. AllowedFrom
// guards the update in SQL so a racing transition loses cleanly instead of
// double-applying.
type StatusUpdate struct {
	Status            Status
	ApprovedBy        *int64
	ManagerApprovedBy *int64
	// AllowedFrom lists the states the row must still be in for the update
	// to land.
	AllowedFrom []Status
}

type Repository interface {
	List(rc auth.RoleContext) ([]Leave, error)
	ListPending(rc auth.RoleContext) ([]Leave, error)
	GetByID(id int64) (*Leave, error)
	// ListPaidByEmployeeYear returns the employee's allowance-counting
	// requests whose start date falls in the given calendar year.
	ListPaidByEmployeeYear(employeeID int64, year int) ([]Leave, error)
	Create(l *Leave) error
	// UpdateStatus applies a guarded transition and reports how many rows
	// matched; zero means the request was no longer in an allowed state.
	UpdateStatus(id int64, update StatusUpdate) (int64, error)
	Delete(id int64) error
}
