package postgres

import (
	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/empmanager/personnel-management/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) base() *gorm.DB {
	return r.db.Table("employees").
		Select("employees.*, departments.name AS department_name").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id")
}

func (r *EmployeeRepository) List(rc auth.RoleContext) ([]employee.Employee, error) {
	var employees []employee.Employee
	err := r.base().
		Scopes(rc.QueryScope(auth.EmployeeScopeFields)).
		Order("employees.last_name, employees.first_name").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var e employee.Employee
	if err := r.base().Where("employees.id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByUserID(userID int64) (*employee.Employee, error) {
	var e employee.Employee
	if err := r.base().Where("employees.user_id = ?", userID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*employee.Employee, error) {
	var e employee.Employee
	if err := r.base().Where("employees.email = ?", email).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Create(e *employee.Employee) error {
	return r.db.Create(e).Error
}

func (r *EmployeeRepository) Update(e *employee.Employee) error {
	return r.db.Save(e).Error
}

func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Delete(&employee.Employee{}, id).Error
}
