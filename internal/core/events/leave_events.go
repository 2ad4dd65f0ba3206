package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLeaveApproved = "leave.approved"
	EventTypeLeaveRejected = "leave.rejected"
)

// LeaveApprovedEvent is emitted after a leave request reaches its final
// approved state. The notification component schedules reminder alarms
// from it.
type LeaveApprovedEvent struct {
	BaseEvent
	LeaveID    int64     `json:"leave_id"`
	EmployeeID int64     `json:"employee_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	ApprovedBy int64     `json:"approved_by"`
}

func NewLeaveApprovedEvent(leaveID, employeeID int64, startDate, endDate time.Time, approvedBy int64) *LeaveApprovedEvent {
	return &LeaveApprovedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveApproved,
			Timestamp: time.Now(),
		},
		LeaveID:    leaveID,
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		ApprovedBy: approvedBy,
	}
}

type LeaveRejectedEvent struct {
	BaseEvent
	LeaveID    int64 `json:"leave_id"`
	EmployeeID int64 `json:"employee_id"`
	RejectedBy int64 `json:"rejected_by"`
}

func NewLeaveRejectedEvent(leaveID, employeeID, rejectedBy int64) *LeaveRejectedEvent {
	return &LeaveRejectedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveRejected,
			Timestamp: time.Now(),
		},
		LeaveID:    leaveID,
		EmployeeID: employeeID,
		RejectedBy: rejectedBy,
	}
}
