package department

import (
	"time"

	"github.com/empmanager/personnel-management/internal/auth"
)

// Department is a contracting company whose personnel is administered here.
type Department struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Manager     string    `json:"manager,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// EmployeeCount is computed by the repository on reads and never
	// written back.
	EmployeeCount int64 `json:"employee_count" gorm:"->;column:employee_count"`
}

func (Department) TableName() string {
	return "departments"
}

type ServiceAPI interface {
	ListDepartments(rc auth.RoleContext) ([]Department, error)
	GetDepartment(rc auth.RoleContext, id int64) (*Department, error)
	CreateDepartment(rc auth.RoleContext, dto CreateDepartmentDTO) (*Department, error)
	UpdateDepartment(rc auth.RoleContext, id int64, dto UpdateDepartmentDTO) (*Department, error)
	DeleteDepartment(rc auth.RoleContext, id int64) error
}

type Repository interface {
	List() ([]Department, error)
	ListByIDs(ids []int64) ([]Department, error)
	ListByOwner(userID int64) ([]Department, error)
	GetByID(id int64) (*Department, error)
	Create(d *Department) error
	Update(d *Department) error
	Delete(id int64) error
}
