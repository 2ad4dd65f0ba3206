package postgres

import (
	"github.com/empmanager/personnel-management/internal/leave"
	"gorm.io/gorm"
)

type employeeRow struct {
	ID           int64  `gorm:"primaryKey"`
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	DepartmentID int64  `gorm:"column:department_id"`
	Direction    string `gorm:"column:direction"`
	UserID       *int64 `gorm:"column:user_id"`
}

func (employeeRow) TableName() string { return "employees" }

// EmployeeDirectory answers the workflow's employee lookups straight from the
// employees table.
type EmployeeDirectory struct {
	db *gorm.DB
}

func NewEmployeeDirectory(db *gorm.DB) leave.EmployeeDirectory {
	return &EmployeeDirectory{db: db}
}

func (d *EmployeeDirectory) EmployeeByID(id int64) (*leave.EmployeeInfo, error) {
	var row employeeRow
	if err := d.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return row.info(), nil
}

func (d *EmployeeDirectory) EmployeeByUserID(userID int64) (*leave.EmployeeInfo, error) {
	var row employeeRow
	if err := d.db.Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return row.info(), nil
}

func (row *employeeRow) info() *leave.EmployeeInfo {
	return &leave.EmployeeInfo{
		ID:           row.ID,
		FullName:     row.FirstName + " " + row.LastName,
		DepartmentID: row.DepartmentID,
		Direction:    row.Direction,
		UserID:       row.UserID,
	}
}
