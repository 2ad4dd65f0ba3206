package notification

import (
	"time"

	"github.com/empmanager/personnel-management/internal/auth"
)

type ReminderType string

const (
	ReminderWeekBefore ReminderType = "week_before"
	ReminderDayBefore  ReminderType = "day_before"
)

// LeaveNotification is a scheduled reminder alarm for an approved leave.
// One alarm exists per (leave, type); re-approving or replaying the event
// never duplicates them.
type LeaveNotification struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	LeaveID     int64        `json:"leave_id" gorm:"column:leave_id;not null;uniqueIndex:uq_notification_leave_type"`
	EmployeeID  int64        `json:"employee_id" gorm:"column:employee_id;not null"`
	Type        ReminderType `json:"type" gorm:"not null;uniqueIndex:uq_notification_leave_type"`
	TriggerDate time.Time    `json:"trigger_date" gorm:"not null"`
	Message     string       `json:"message"`
	Sent        bool         `json:"sent" gorm:"default:false"`
	SentAt      *time.Time   `json:"sent_at,omitempty" gorm:"column:sent_at"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (LeaveNotification) TableName() string {
	return "leave_notifications"
}

// Due reports whether the alarm should fire: trigger date reached and not
// yet sent. Alarms scheduled in the past fire immediately.
func (n *LeaveNotification) Due(now time.Time) bool {
	return !n.Sent && !n.TriggerDate.After(now)
}

// EmployeeScope is the slice of a personnel record needed to decide who may
// read an employee's reminders. Consumer-side so this package does not
// depend on the employee package.
type EmployeeScope struct {
	ID           int64
	DepartmentID int64
	Direction    string
	UserID       *int64
}

type EmployeeDirectory interface {
	EmployeeByID(id int64) (*EmployeeScope, error)
}

type ServiceAPI interface {
	ScheduleLeaveReminders(leaveID, employeeID int64, startDate time.Time) error
	ListDue() ([]LeaveNotification, error)
	ListByEmployee(rc auth.RoleContext, employeeID int64) ([]LeaveNotification, error)
	Acknowledge(id int64) (*LeaveNotification, error)
}

type Repository interface {
	GetByLeaveAndType(leaveID int64, reminderType ReminderType) (*LeaveNotification, error)
	ListDue(now time.Time) ([]LeaveNotification, error)
	ListByEmployee(employeeID int64) ([]LeaveNotification, error)
	GetByID(id int64) (*LeaveNotification, error)
	Create(n *LeaveNotification) error
	Update(n *LeaveNotification) error
}
