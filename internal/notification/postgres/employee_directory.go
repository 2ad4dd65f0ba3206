package postgres

import (
	"github.com/empmanager/personnel-management/internal/notification"
	"gorm.io/gorm"
)

type employeeScopeRow struct {
	ID           int64  `gorm:"primaryKey"`
	DepartmentID int64  `gorm:"column:department_id"`
	Direction    string `gorm:"column:direction"`
	UserID       *int64 `gorm:"column:user_id"`
}

func (employeeScopeRow) TableName() string { return "employees" }

// EmployeeDirectory answers the visibility lookups straight from the
// employees table.
type EmployeeDirectory struct {
	db *gorm.DB
}

func NewEmployeeDirectory(db *gorm.DB) notification.EmployeeDirectory {
	return &EmployeeDirectory{db: db}
}

func (d *EmployeeDirectory) EmployeeByID(id int64) (*notification.EmployeeScope, error) {
	var row employeeScopeRow
	if err := d.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &notification.EmployeeScope{
		ID:           row.ID,
		DepartmentID: row.DepartmentID,
		Direction:    row.Direction,
		UserID:       row.UserID,
	}, nil
}
