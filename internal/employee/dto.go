package employee

import (
	"net/mail"
	"strings"
	"time"

	"github.com/empmanager/personnel-management/internal"
	"github.com/shopspring/decimal"
)

type CreateEmployeeDTO struct {
	Matricule     string           `json:"matricule"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Gender        Gender           `json:"gender"`
	BirthDate     *time.Time       `json:"birth_date"`
	HireDate      time.Time        `json:"hire_date"`
	DepartmentID  int64            `json:"department_id"`
	Direction     string           `json:"direction"`
	Position      string           `json:"position"`
	Salary        *decimal.Decimal `json:"salary"`
	CNPSNumber    string           `json:"cnps_number"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	MaritalStatus string           `json:"marital_status"`
	ChildrenCount int              `json:"children_count"`
	Status        Status           `json:"status"`
	UserID        *int64           `json:"user_id"`
}

func (d CreateEmployeeDTO) Validate() error {
	if strings.TrimSpace(d.Matricule) == "" {
		return internal.NewValidationFieldError("matricule", "matricule is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.LastName) == "" {
		return internal.NewValidationFieldError("last_name", "last name is required", internal.ErrCodeValidationFailed)
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return internal.NewValidationFieldError("email", "a valid email is required", internal.ErrCodeValidationFailed)
	}
	if d.DepartmentID <= 0 {
		return internal.NewValidationFieldError("department_id", "department is required", internal.ErrCodeValidationFailed)
	}
	if d.HireDate.IsZero() {
		return internal.NewValidationFieldError("hire_date", "hire date is required", internal.ErrCodeValidationFailed)
	}
	if d.Salary != nil && d.Salary.IsNegative() {
		return internal.NewValidationFieldError("salary", "salary cannot be negative", internal.ErrCodeValidationFailed)
	}
	if d.Status != "" && !d.Status.IsValid() {
		return internal.NewValidationFieldError("status", "status must be active, inactive or on_leave", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateEmployeeDTO struct {
	FirstName     *string          `json:"first_name,omitempty"`
	LastName      *string          `json:"last_name,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	Gender        *Gender          `json:"gender,omitempty"`
	BirthDate     *time.Time       `json:"birth_date,omitempty"`
	HireDate      *time.Time       `json:"hire_date,omitempty"`
	DepartmentID  *int64           `json:"department_id,omitempty"`
	Direction     *string          `json:"direction,omitempty"`
	Position      *string          `json:"position,omitempty"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
	CNPSNumber    *string          `json:"cnps_number,omitempty"`
	Address       *string          `json:"address,omitempty"`
	City          *string          `json:"city,omitempty"`
	MaritalStatus *string          `json:"marital_status,omitempty"`
	ChildrenCount *int             `json:"children_count,omitempty"`
	Status        *Status          `json:"status,omitempty"`
	UserID        *int64           `json:"user_id,omitempty"`
}

func (d UpdateEmployeeDTO) Validate() error {
	if d.Email != nil {
		if _, err := mail.ParseAddress(*d.Email); err != nil {
			return internal.NewValidationFieldError("email", "a valid email is required", internal.ErrCodeValidationFailed)
		}
	}
	if d.Salary != nil && d.Salary.IsNegative() {
		return internal.NewValidationFieldError("salary", "salary cannot be negative", internal.ErrCodeValidationFailed)
	}
	if d.Status != nil && !d.Status.IsValid() {
		return internal.NewValidationFieldError("status", "status must be active, inactive or on_leave", internal.ErrCodeValidationFailed)
	}
	if d.DepartmentID != nil && *d.DepartmentID <= 0 {
		return internal.NewValidationFieldError("department_id", "department is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// DepartmentGroup is the shape of the employees-by-department listing.
type DepartmentGroup struct {
	DepartmentID   int64      `json:"department_id"`
	DepartmentName string     `json:"department_name"`
	Employees      []Employee `json:"employees"`
}
