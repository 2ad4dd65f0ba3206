package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/empmanager/personnel-management/internal/core/events"
)

// EventHandler turns leave lifecycle events into reminder alarms. It replaces
// persistence-side hooks: the workflow publishes, nothing here writes back to
// the leave.
type EventHandler struct {
	service ServiceAPI
	logger  *slog.Logger
}

func NewEventHandler(service ServiceAPI, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger.With("component", "notification_event_handler"),
	}
}

func (h *EventHandler) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeLeaveApproved, h.HandleLeaveApproved)
}

func (h *EventHandler) HandleLeaveApproved(ctx context.Context, event events.Event) error {
	approved, ok := event.(*events.LeaveApprovedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s event", event.EventType())
	}

	h.logger.Info("scheduling reminders for approved leave",
		"leave_id", approved.LeaveID,
		"employee_id", approved.EmployeeID,
		"start_date", approved.StartDate.Format("2006-01-02"))

	return h.service.ScheduleLeaveReminders(approved.LeaveID, approved.EmployeeID, approved.StartDate)
}
