package postgres

import (
	"time"

	"github.com/empmanager/personnel-management/internal/notification"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) GetByLeaveAndType(leaveID int64, reminderType notification.ReminderType) (*notification.LeaveNotification, error) {
	var n notification.LeaveNotification
	err := r.db.Where("leave_id = ? AND type = ?", leaveID, reminderType).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) ListDue(now time.Time) ([]notification.LeaveNotification, error) {
	var notifications []notification.LeaveNotification
	err := r.db.
		Where("sent = ? AND trigger_date <= ?", false, now).
		Order("trigger_date").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) ListByEmployee(employeeID int64) ([]notification.LeaveNotification, error) {
	var notifications []notification.LeaveNotification
	err := r.db.
		Where("employee_id = ?", employeeID).
		Order("trigger_date DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) GetByID(id int64) (*notification.LeaveNotification, error) {
	var n notification.LeaveNotification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) Create(n *notification.LeaveNotification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) Update(n *notification.LeaveNotification) error {
	return r.db.Save(n).Error
}
