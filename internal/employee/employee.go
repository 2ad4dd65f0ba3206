package employee

import (
	"time"

	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnLeave  Status = "on_leave"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Employee is a contractor agent placed in a contracting company under a
// ministry direction. UserID links the record to a login account when the
// agent has one; most agents do not.
type Employee struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	Matricule     string          `json:"matricule" gorm:"uniqueIndex;not null"`
	FirstName     string          `json:"first_name" gorm:"not null"`
	LastName      string          `json:"last_name" gorm:"not null"`
	Email         string          `json:"email" gorm:"uniqueIndex;not null"`
	Phone         string          `json:"phone,omitempty"`
	Gender        Gender          `json:"gender,omitempty"`
	BirthDate     *time.Time      `json:"birth_date,omitempty"`
	HireDate      time.Time       `json:"hire_date"`
	DepartmentID  int64           `json:"department_id" gorm:"column:department_id;not null"`
	Direction     string          `json:"direction"`
	Position      string          `json:"position,omitempty"`
	Salary        decimal.Decimal `json:"salary" gorm:"type:numeric(12,2)"`
	CNPSNumber    string          `json:"cnps_number,omitempty" gorm:"column:cnps_number"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	MaritalStatus string          `json:"marital_status,omitempty"`
	ChildrenCount int             `json:"children_count"`
	Status        Status          `json:"status" gorm:"default:active"`
	UserID        *int64          `json:"user_id,omitempty" gorm:"column:user_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// DepartmentName is resolved through a join on reads.
	DepartmentName string `json:"department_name,omitempty" gorm:"->;column:department_name"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Age in whole years at the given reference time, -1 when the birth date is
// unknown.
func (e *Employee) Age(now time.Time) int {
	if e.BirthDate == nil {
		return -1
	}
	years := now.Year() - e.BirthDate.Year()
	anniversary := time.Date(now.Year(), e.BirthDate.Month(), e.BirthDate.Day(), 0, 0, 0, 0, time.UTC)
	if now.Before(anniversary) {
		years--
	}
	return years
}

// DepartmentRef, DirectionRef and OwnerRef expose the visibility scope of the
// record.
func (e *Employee) DepartmentRef() (int64, bool) {
	if e.DepartmentID == 0 {
		return 0, false
	}
	return e.DepartmentID, true
}

func (e *Employee) DirectionRef() string {
	return e.Direction
}

func (e *Employee) OwnerRef() (int64, bool) {
	if e.UserID == nil {
		return 0, false
	}
	return *e.UserID, true
}

type ServiceAPI interface {
	ListEmployees(rc auth.RoleContext) ([]Employee, error)
	GetEmployee(rc auth.RoleContext, id int64) (*Employee, error)
	CreateEmployee(rc auth.RoleContext, dto CreateEmployeeDTO) (*Employee, error)
	UpdateEmployee(rc auth.RoleContext, id int64, dto UpdateEmployeeDTO) (*Employee, error)
	DeleteEmployee(rc auth.RoleContext, id int64) error
	EmployeesByDepartment(rc auth.RoleContext) ([]DepartmentGroup, error)
}

type Repository interface {
	List(rc auth.RoleContext) ([]Employee, error)
	GetByID(id int64) (*Employee, error)
	GetByUserID(userID int64) (*Employee, error)
	GetByEmail(email string) (*Employee, error)
	Create(e *Employee) error
	Update(e *Employee) error
	Delete(id int64) error
}
