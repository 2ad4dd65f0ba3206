package attendance

import (
	"time"

	"github.com/empmanager/personnel-management/internal/auth"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// Attendance is one presence record per employee and calendar day. The
// (employee, date) pair is unique; duplicates are rejected at creation.
type Attendance struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	EmployeeID int64      `json:"employee_id" gorm:"column:employee_id;not null;uniqueIndex:uq_attendance_employee_date"`
	Date       time.Time  `json:"date" gorm:"not null;uniqueIndex:uq_attendance_employee_date"`
	CheckIn    *time.Time `json:"check_in,omitempty" gorm:"column:check_in"`
	CheckOut   *time.Time `json:"check_out,omitempty" gorm:"column:check_out"`
	Status     Status     `json:"status" gorm:"default:present"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Scope columns resolved through the employees join, read-only.
	EmployeeName         string `json:"employee_name,omitempty" gorm:"->;column:employee_name"`
	EmployeeDepartmentID int64  `json:"-" gorm:"->;column:employee_department_id"`
	EmployeeDirection    string `json:"-" gorm:"->;column:employee_direction"`
	EmployeeUserID       *int64 `json:"-" gorm:"->;column:employee_user_id"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// HoursWorked is zero unless both times are present and check-out is after
// check-in.
func (a *Attendance) HoursWorked() float64 {
	if a.CheckIn == nil || a.CheckOut == nil {
		return 0
	}
	if !a.CheckOut.After(*a.CheckIn) {
		return 0
	}
	return a.CheckOut.Sub(*a.CheckIn).Hours()
}

func (a *Attendance) DepartmentRef() (int64, bool) {
	if a.EmployeeDepartmentID == 0 {
		return 0, false
	}
	return a.EmployeeDepartmentID, true
}

func (a *Attendance) DirectionRef() string {
	return a.EmployeeDirection
}

func (a *Attendance) OwnerRef() (int64, bool) {
	if a.EmployeeUserID == nil {
		return 0, false
	}
	return *a.EmployeeUserID, true
}

type ServiceAPI interface {
	ListAttendance(rc auth.RoleContext) ([]Attendance, error)
	Today(rc auth.RoleContext) ([]Attendance, error)
	ByEmployee(rc auth.RoleContext, employeeID int64) ([]Attendance, error)
	GetAttendance(rc auth.RoleContext, id int64) (*Attendance, error)
	RecordAttendance(rc auth.RoleContext, dto RecordAttendanceDTO) (*Attendance, error)
	UpdateAttendance(rc auth.RoleContext, id int64, dto UpdateAttendanceDTO) (*Attendance, error)
	DeleteAttendance(rc auth.RoleContext, id int64) error
}

type Repository interface {
	List(rc auth.RoleContext) ([]Attendance, error)
	ListByDate(rc auth.RoleContext, date time.Time) ([]Attendance, error)
	ListByEmployee(employeeID int64) ([]Attendance, error)
	GetByID(id int64) (*Attendance, error)
	GetByEmployeeAndDate(employeeID int64, date time.Time) (*Attendance, error)
	Create(a *Attendance) error
	Update(a *Attendance) error
	Delete(id int64) error
}
