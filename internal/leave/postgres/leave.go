package postgres

import (
	"time"

	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/empmanager/personnel-management/internal/leave"
	"gorm.io/gorm"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.Repository {
	return &LeaveRepository{db: db}
}

// base joins the owning employee and both approver accounts so every read
// carries the scope columns and the denormalized display names.
func (r *LeaveRepository) base() *gorm.DB {
	return r.db.Table("leaves").
		Select(`leaves.*,
			(employees.first_name || ' ' || employees.last_name) AS employee_name,
			employees.department_id AS employee_department_id,
			employees.direction AS employee_direction,
			employees.user_id AS employee_user_id,
			(managers.first_name || ' ' || managers.last_name) AS manager_approved_by_name,
			(approvers.first_name || ' ' || approvers.last_name) AS approved_by_name`).
		Joins("JOIN employees ON employees.id = leaves.employee_id").
		Joins("LEFT JOIN users AS managers ON managers.id = leaves.manager_approved_by").
		Joins("LEFT JOIN users AS approvers ON approvers.id = leaves.approved_by")
}

func (r *LeaveRepository) List(rc auth.RoleContext) ([]leave.Leave, error) {
	var leaves []leave.Leave
	err := r.base().
		Scopes(rc.QueryScope(auth.LeaveScopeFields)).
		Order("leaves.created_at DESC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *LeaveRepository) ListPending(rc auth.RoleContext) ([]leave.Leave, error) {
	var leaves []leave.Leave
	err := r.base().
		Scopes(rc.QueryScope(auth.LeaveScopeFields)).
		Where("leaves.status IN ?", []leave.Status{leave.StatusPending, leave.StatusManagerApproved}).
		Order("leaves.created_at").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *LeaveRepository) GetByID(id int64) (*leave.Leave, error) {
	var l leave.Leave
	if err := r.base().Where("leaves.id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeaveRepository) ListPaidByEmployeeYear(employeeID int64, year int) ([]leave.Leave, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var leaves []leave.Leave
	err := r.db.Table("leaves").
		Where("employee_id = ?", employeeID).
		Where("leave_type = ?", leave.TypePaid).
		Where("start_date >= ? AND start_date < ?", from, to).
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *LeaveRepository) Create(l *leave.Leave) error {
	return r.db.Create(l).Error
}

// UpdateStatus applies a workflow transition guarded by the allowed prior
// states, so two racing approvals cannot both land. The manager approver is
// written through COALESCE: an admin short-circuit fills it only when the
// first tier never ran.
func (r *LeaveRepository) UpdateStatus(id int64, update leave.StatusUpdate) (int64, error) {
	values := map[string]interface{}{
		"status":     update.Status,
		"updated_at": time.Now(),
	}
	if update.ApprovedBy != nil {
		values["approved_by"] = *update.ApprovedBy
	}
	if update.ManagerApprovedBy != nil {
		values["manager_approved_by"] = gorm.Expr("COALESCE(manager_approved_by, ?)", *update.ManagerApprovedBy)
	}

	res := r.db.Table("leaves").
		Where("id = ?", id).
		Where("status IN ?", update.AllowedFrom).
		Updates(values)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *LeaveRepository) Delete(id int64) error {
	return r.db.Delete(&leave.Leave{}, id).Error
}
