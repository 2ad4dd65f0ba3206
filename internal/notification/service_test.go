package notification

import (
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/empmanager/personnel-management/internal"
	"github.com/empmanager/personnel-management/internal/auth"
)

func TestNotificationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Service Suite")
}

type mockNotificationRepository struct {
	notifications map[int64]*LeaveNotification
	nextID        int64
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{notifications: make(map[int64]*LeaveNotification), nextID: 1}
}

func (m *mockNotificationRepository) GetByLeaveAndType(leaveID int64, reminderType ReminderType) (*LeaveNotification, error) {
	for _, n := range m.notifications {
		if n.LeaveID == leaveID && n.Type == reminderType {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepository) ListDue(now time.Time) ([]LeaveNotification, error) {
	out := make([]LeaveNotification, 0)
	for _, n := range m.notifications {
		if n.Due(now) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepository) ListByEmployee(employeeID int64) ([]LeaveNotification, error) {
	out := make([]LeaveNotification, 0)
	for _, n := range m.notifications {
		if n.EmployeeID == employeeID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepository) GetByID(id int64) (*LeaveNotification, error) {
	n, ok := m.notifications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (m *mockNotificationRepository) Create(n *LeaveNotification) error {
	n.ID = m.nextID
	m.nextID++
	m.notifications[n.ID] = n
	return nil
}

func (m *mockNotificationRepository) Update(n *LeaveNotification) error {
	m.notifications[n.ID] = n
	return nil
}

type mockEmployeeDirectory struct {
	employees map[int64]*EmployeeScope
}

func newMockEmployeeDirectory() *mockEmployeeDirectory {
	return &mockEmployeeDirectory{employees: make(map[int64]*EmployeeScope)}
}

func (m *mockEmployeeDirectory) add(e *EmployeeScope) { m.employees[e.ID] = e }

func (m *mockEmployeeDirectory) EmployeeByID(id int64) (*EmployeeScope, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func userID(v int64) *int64 { return &v }

var _ = Describe("NotificationService", func() {
	var (
		svc       *Service
		repo      *mockNotificationRepository
		directory *mockEmployeeDirectory
		now       time.Time
	)

	BeforeEach(func() {
		repo = newMockNotificationRepository()
		directory = newMockEmployeeDirectory()
		directory.add(&EmployeeScope{ID: 100, DepartmentID: 1, Direction: "DRH", UserID: userID(10)})
		directory.add(&EmployeeScope{ID: 200, DepartmentID: 2, Direction: "DAF", UserID: userID(20)})
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc = NewService(repo, directory, logger)
		now = time.Date(2026, time.June, 15, 9, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }
	})

	Describe("ScheduleLeaveReminders", func() {
		It("creates the week-before and day-before alarms", func() {
			start := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

			Expect(svc.ScheduleLeaveReminders(5, 100, start)).To(Succeed())

			week, err := repo.GetByLeaveAndType(5, ReminderWeekBefore)
			Expect(err).NotTo(HaveOccurred())
			Expect(week.TriggerDate).To(Equal(start.AddDate(0, 0, -7)))
			Expect(week.EmployeeID).To(Equal(int64(100)))

			day, err := repo.GetByLeaveAndType(5, ReminderDayBefore)
			Expect(err).NotTo(HaveOccurred())
			Expect(day.TriggerDate).To(Equal(start.AddDate(0, 0, -1)))
		})

		It("is idempotent across replays of the same approval", func() {
			start := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

			Expect(svc.ScheduleLeaveReminders(5, 100, start)).To(Succeed())
			Expect(svc.ScheduleLeaveReminders(5, 100, start)).To(Succeed())

			Expect(repo.notifications).To(HaveLen(2))
		})

		It("still creates alarms whose trigger date already passed", func() {
			start := now.AddDate(0, 0, 2)

			Expect(svc.ScheduleLeaveReminders(5, 100, start)).To(Succeed())

			week, err := repo.GetByLeaveAndType(5, ReminderWeekBefore)
			Expect(err).NotTo(HaveOccurred())
			Expect(week.TriggerDate.Before(now)).To(BeTrue())
			Expect(week.Due(now)).To(BeTrue())
		})
	})

	Describe("ListDue", func() {
		It("returns unsent alarms whose trigger date is reached", func() {
			start := now.AddDate(0, 0, 7)
			Expect(svc.ScheduleLeaveReminders(5, 100, start)).To(Succeed())

			due, err := svc.ListDue()

			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(1))
			Expect(due[0].Type).To(Equal(ReminderWeekBefore))
		})

		It("skips acknowledged alarms", func() {
			start := now.AddDate(0, 0, 7)
			Expect(svc.ScheduleLeaveReminders(5, 100, start)).To(Succeed())

			due, err := svc.ListDue()
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(1))

			_, err = svc.Acknowledge(due[0].ID)
			Expect(err).NotTo(HaveOccurred())

			due, err = svc.ListDue()
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(BeEmpty())
		})
	})

	Describe("ListByEmployee", func() {
		BeforeEach(func() {
			start := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
			Expect(svc.ScheduleLeaveReminders(5, 100, start)).To(Succeed())
			Expect(svc.ScheduleLeaveReminders(6, 200, start)).To(Succeed())
		})

		It("lets an employee read their own reminders", func() {
			rc := auth.RoleContext{Role: auth.RoleEmployee, UserID: 10}

			notifications, err := svc.ListByEmployee(rc, 100)

			Expect(err).NotTo(HaveOccurred())
			Expect(notifications).To(HaveLen(2))
		})

		It("refuses an employee reading another employee's reminders", func() {
			rc := auth.RoleContext{Role: auth.RoleEmployee, UserID: 10}

			_, err := svc.ListByEmployee(rc, 200)

			Expect(err).To(MatchError(internal.ErrForbidden))
		})

		It("refuses an enterprise account outside its department", func() {
			rc := auth.RoleContext{Role: auth.RoleEnterprise, UserID: 3, DepartmentID: 1}

			_, err := svc.ListByEmployee(rc, 200)

			Expect(err).To(MatchError(internal.ErrForbidden))
		})

		It("lets staff read any employee's reminders", func() {
			rc := auth.RoleContext{Role: auth.RoleManager, UserID: 2, Directions: []string{"DRH"}}

			notifications, err := svc.ListByEmployee(rc, 200)

			Expect(err).NotTo(HaveOccurred())
			Expect(notifications).To(HaveLen(2))
		})

		It("reports a missing employee", func() {
			rc := auth.RoleContext{Role: auth.RoleAdmin, UserID: 1}

			_, err := svc.ListByEmployee(rc, 999)

			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})
	})

	Describe("Acknowledge", func() {
		It("stamps the send time once", func() {
			start := now.AddDate(0, 0, 1)
			Expect(svc.ScheduleLeaveReminders(5, 100, start)).To(Succeed())

			n, err := repo.GetByLeaveAndType(5, ReminderDayBefore)
			Expect(err).NotTo(HaveOccurred())

			acked, err := svc.Acknowledge(n.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(acked.Sent).To(BeTrue())
			Expect(acked.SentAt).To(HaveValue(Equal(now)))

			again, err := svc.Acknowledge(n.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.SentAt).To(HaveValue(Equal(now)))
		})

		It("reports missing alarms", func() {
			_, err := svc.Acknowledge(999)

			Expect(err).To(MatchError(internal.ErrNotificationNotFound))
		})
	})
})
