package postgres

import (
	"github.com/empmanager/personnel-management/internal/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

// withEmployeeCount left-joins the employees table so every read carries the
// headcount without a second query per row.
func (r *DepartmentRepository) withEmployeeCount() *gorm.DB {
	return r.db.Table("departments").
		Select("departments.*, COUNT(employees.id) AS employee_count").
		Joins("LEFT JOIN employees ON employees.department_id = departments.id").
		Group("departments.id")
}

func (r *DepartmentRepository) List() ([]department.Department, error) {
	var departments []department.Department
	err := r.withEmployeeCount().
		Order("departments.name").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *DepartmentRepository) ListByIDs(ids []int64) ([]department.Department, error) {
	var departments []department.Department
	err := r.withEmployeeCount().
		Where("departments.id IN ?", ids).
		Order("departments.name").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

// ListByOwner returns the departments whose personnel records are linked to
// the given account. An employee principal resolves to at most one row.
func (r *DepartmentRepository) ListByOwner(userID int64) ([]department.Department, error) {
	var departments []department.Department
	err := r.db.Table("departments").
		Select("DISTINCT departments.*").
		Joins("JOIN employees ON employees.department_id = departments.id").
		Where("employees.user_id = ?", userID).
		Order("departments.name").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *DepartmentRepository) GetByID(id int64) (*department.Department, error) {
	var d department.Department
	err := r.withEmployeeCount().
		Where("departments.id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) Create(d *department.Department) error {
	return r.db.Create(d).Error
}

func (r *DepartmentRepository) Update(d *department.Department) error {
	return r.db.Save(d).Error
}

func (r *DepartmentRepository) Delete(id int64) error {
	return r.db.Delete(&department.Department{}, id).Error
}
