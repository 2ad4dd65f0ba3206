package postgres

import (
	"time"

	"github.com/empmanager/personnel-management/internal/attendance"
	"github.com/empmanager/personnel-management/internal/auth"
	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) base() *gorm.DB {
	return r.db.Table("attendances").
		Select(`attendances.*,
			(employees.first_name || ' ' || employees.last_name) AS employee_name,
			employees.department_id AS employee_department_id,
			employees.direction AS employee_direction,
			employees.user_id AS employee_user_id`).
		Joins("JOIN employees ON employees.id = attendances.employee_id")
}

func (r *AttendanceRepository) List(rc auth.RoleContext) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	err := r.base().
		Scopes(rc.QueryScope(auth.AttendanceScopeFields)).
		Order("attendances.date DESC, employees.last_name").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *AttendanceRepository) ListByDate(rc auth.RoleContext, date time.Time) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	err := r.base().
		Scopes(rc.QueryScope(auth.AttendanceScopeFields)).
		Where("attendances.date = ?", date).
		Order("employees.last_name").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *AttendanceRepository) ListByEmployee(employeeID int64) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	err := r.base().
		Where("attendances.employee_id = ?", employeeID).
		Order("attendances.date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *AttendanceRepository) GetByID(id int64) (*attendance.Attendance, error) {
	var a attendance.Attendance
	if err := r.base().Where("attendances.id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(employeeID int64, date time.Time) (*attendance.Attendance, error) {
	var a attendance.Attendance
	err := r.db.Table("attendances").
		Where("employee_id = ? AND date = ?", employeeID, date).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepository) Create(a *attendance.Attendance) error {
	return r.db.Create(a).Error
}

func (r *AttendanceRepository) Update(a *attendance.Attendance) error {
	return r.db.Save(a).Error
}

func (r *AttendanceRepository) Delete(id int64) error {
	return r.db.Delete(&attendance.Attendance{}, id).Error
}
