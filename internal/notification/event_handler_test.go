package notification

import (
	"context"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/empmanager/personnel-management/internal/core/events"
)

var _ = Describe("EventHandler", func() {
	var (
		repo    *mockNotificationRepository
		handler *EventHandler
		bus     *events.EventBus
	)

	BeforeEach(func() {
		repo = newMockNotificationRepository()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler = NewEventHandler(NewService(repo, newMockEmployeeDirectory(), logger), logger)
		bus = events.NewEventBus(logger)
		handler.Register(bus)
	})

	It("schedules reminders when a leave is approved", func() {
		start := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
		event := events.NewLeaveApprovedEvent(5, 100, start, start.AddDate(0, 0, 4), 1)

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		week, err := repo.GetByLeaveAndType(5, ReminderWeekBefore)
		Expect(err).NotTo(HaveOccurred())
		Expect(week.TriggerDate).To(Equal(start.AddDate(0, 0, -7)))

		day, err := repo.GetByLeaveAndType(5, ReminderDayBefore)
		Expect(err).NotTo(HaveOccurred())
		Expect(day.TriggerDate).To(Equal(start.AddDate(0, 0, -1)))
	})

	It("rejects payloads that are not approval events", func() {
		event := events.BaseEvent{ID: "x", Type: events.EventTypeLeaveApproved, Timestamp: time.Now()}

		err := handler.HandleLeaveApproved(context.Background(), event)

		Expect(err).To(HaveOccurred())
	})
})
