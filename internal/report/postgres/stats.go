package postgres

import (
	"time"

	"github.com/empmanager/personnel-management/internal/attendance"
	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/empmanager/personnel-management/internal/leave"
	"github.com/empmanager/personnel-management/internal/report"
	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) report.StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountEmployees(rc auth.RoleContext) (int64, error) {
	var count int64
	err := r.db.Table("employees").
		Scopes(rc.QueryScope(auth.EmployeeScopeFields)).
		Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountDepartments() (int64, error) {
	var count int64
	err := r.db.Table("departments").Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountPresent(rc auth.RoleContext, date time.Time) (int64, error) {
	var count int64
	err := r.db.Table("attendances").
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Scopes(rc.QueryScope(auth.AttendanceScopeFields)).
		Where("attendances.date = ?", date).
		Where("attendances.status = ?", attendance.StatusPresent).
		Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountOnApprovedLeave(rc auth.RoleContext, date time.Time) (int64, error) {
	var count int64
	err := r.db.Table("leaves").
		Joins("JOIN employees ON employees.id = leaves.employee_id").
		Scopes(rc.QueryScope(auth.LeaveScopeFields)).
		Where("leaves.status = ?", leave.StatusApproved).
		Where("leaves.start_date <= ? AND leaves.end_date >= ?", date, date).
		Count(&count).Error
	return count, err
}
