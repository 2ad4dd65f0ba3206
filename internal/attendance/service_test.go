package attendance

import (
	"errors"
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

func TestAttendanceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Service Suite")
}

type mockAttendanceRepository struct {
	records map[int64]*Attendance
	nextID  int64
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{records: make(map[int64]*Attendance), nextID: 1}
}

func (m *mockAttendanceRepository) List(rc auth.RoleContext) ([]Attendance, error) {
	out := make([]Attendance, 0, len(m.records))
	for _, a := range m.records {
		if rc.Allows(a) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) ListByDate(rc auth.RoleContext, date time.Time) ([]Attendance, error) {
	out := make([]Attendance, 0)
	for _, a := range m.records {
		if a.Date.Equal(date) && rc.Allows(a) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) ListByEmployee(employeeID int64) ([]Attendance, error) {
	out := make([]Attendance, 0)
	for _, a := range m.records {
		if a.EmployeeID == employeeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) GetByID(id int64) (*Attendance, error) {
	a, ok := m.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (m *mockAttendanceRepository) GetByEmployeeAndDate(employeeID int64, date time.Time) (*Attendance, error) {
	for _, a := range m.records {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepository) Create(a *Attendance) error {
	a.ID = m.nextID
	m.nextID++
	m.records[a.ID] = a
	return nil
}

func (m *mockAttendanceRepository) Update(a *Attendance) error {
	m.records[a.ID] = a
	return nil
}

func (m *mockAttendanceRepository) Delete(id int64) error {
	delete(m.records, id)
	return nil
}

func ownerID(v int64) *int64 { return &v }

var _ = Describe("AttendanceService", func() {
	var (
		svc  *Service
		repo *mockAttendanceRepository

		adminRC    auth.RoleContext
		managerRC  auth.RoleContext
		employeeRC auth.RoleContext

		today time.Time
	)

	at := func(day, hour int) *time.Time {
		t := time.Date(2026, time.June, day, hour, 0, 0, 0, time.UTC)
		return &t
	}

	seedRecord := func(employeeID int64, date time.Time, direction string, owner *int64) *Attendance {
		a := &Attendance{
			EmployeeID:           employeeID,
			Date:                 date,
			Status:               StatusPresent,
			EmployeeDepartmentID: 1,
			EmployeeDirection:    direction,
			EmployeeUserID:       owner,
		}
		Expect(repo.Create(a)).To(Succeed())
		return a
	}

	BeforeEach(func() {
		repo = newMockAttendanceRepository()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc = NewService(repo, logger)
		today = time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return today.Add(9 * time.Hour) }

		adminRC = auth.RoleContext{Role: auth.RoleAdmin, UserID: 1}
		managerRC = auth.RoleContext{Role: auth.RoleManager, UserID: 2, Directions: []string{"DRH"}}
		employeeRC = auth.RoleContext{Role: auth.RoleEmployee, UserID: 10}
	})

	Describe("RecordAttendance", func() {
		Context("when staff records a valid presence", func() {
			It("stores it truncated to the calendar day", func() {
				a, err := svc.RecordAttendance(managerRC, RecordAttendanceDTO{
					EmployeeID: 100,
					Date:       time.Date(2026, time.June, 15, 14, 30, 0, 0, time.UTC),
					CheckIn:    at(15, 8),
					CheckOut:   at(15, 17),
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(a.Date).To(Equal(today))
				Expect(a.Status).To(Equal(StatusPresent))
			})
		})

		Context("when the status is spelled as the API documents it", func() {
			It("accepts the half-day literal", func() {
				a, err := svc.RecordAttendance(managerRC, RecordAttendanceDTO{
					EmployeeID: 100,
					Date:       today,
					Status:     Status("half-day"),
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(a.Status).To(Equal(StatusHalfDay))
			})

			It("rejects the underscore spelling", func() {
				_, err := svc.RecordAttendance(managerRC, RecordAttendanceDTO{
					EmployeeID: 100,
					Date:       today,
					Status:     Status("half_day"),
				})

				var appErr *internal.AppError
				Expect(errors.As(err, &appErr)).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
			})
		})

		Context("when a record already exists for the employee and day", func() {
			It("rejects the duplicate", func() {
				seedRecord(100, today, "DRH", ownerID(10))

				_, err := svc.RecordAttendance(adminRC, RecordAttendanceDTO{
					EmployeeID: 100,
					Date:       today.Add(18 * time.Hour),
				})

				Expect(err).To(MatchError(internal.ErrDuplicateAttendance))
			})
		})

		Context("when an employee records attendance", func() {
			It("is forbidden", func() {
				_, err := svc.RecordAttendance(employeeRC, RecordAttendanceDTO{
					EmployeeID: 100,
					Date:       today,
				})

				Expect(err).To(MatchError(internal.ErrForbidden))
			})
		})

		Context("when check-out precedes check-in", func() {
			It("fails validation", func() {
				_, err := svc.RecordAttendance(adminRC, RecordAttendanceDTO{
					EmployeeID: 100,
					Date:       today,
					CheckIn:    at(15, 17),
					CheckOut:   at(15, 8),
				})

				var appErr *internal.AppError
				Expect(errors.As(err, &appErr)).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
			})
		})
	})

	Describe("ByEmployee", func() {
		BeforeEach(func() {
			seedRecord(100, today, "DRH", ownerID(10))
			seedRecord(100, today.AddDate(0, 0, -1), "DRH", ownerID(10))
		})

		It("returns everything to staff supervising the direction", func() {
			records, err := svc.ByEmployee(managerRC, 100)

			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
		})

		It("hides records outside the manager's directions", func() {
			other := auth.RoleContext{Role: auth.RoleManager, UserID: 5, Directions: []string{"DSI"}}

			records, err := svc.ByEmployee(other, 100)

			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("lets an employee see its own history", func() {
			records, err := svc.ByEmployee(employeeRC, 100)

			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
		})
	})

	Describe("Today", func() {
		It("returns only records of the current day", func() {
			seedRecord(100, today, "DRH", ownerID(10))
			seedRecord(100, today.AddDate(0, 0, -1), "DRH", ownerID(10))

			records, err := svc.Today(adminRC)

			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
		})
	})

	Describe("GetAttendance", func() {
		It("treats out-of-scope records as missing", func() {
			a := seedRecord(100, today, "DAF", ownerID(10))

			_, err := svc.GetAttendance(managerRC, a.ID)

			Expect(err).To(MatchError(internal.ErrAttendanceNotFound))
		})
	})

	Describe("UpdateAttendance", func() {
		It("rejects an update leaving check-out before check-in", func() {
			a := seedRecord(100, today, "DRH", ownerID(10))
			a.CheckIn = at(15, 9)

			_, err := svc.UpdateAttendance(managerRC, a.ID, UpdateAttendanceDTO{
				CheckOut: at(15, 8),
			})

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("DeleteAttendance", func() {
		It("is staff only", func() {
			a := seedRecord(100, today, "DRH", ownerID(10))
			enterprise := auth.RoleContext{Role: auth.RoleEnterprise, UserID: 3, DepartmentID: 1}

			Expect(svc.DeleteAttendance(enterprise, a.ID)).To(MatchError(internal.ErrForbidden))
			Expect(svc.DeleteAttendance(managerRC, a.ID)).To(Succeed())
		})
	})
})

var _ = Describe("HoursWorked", func() {
	It("is zero without both timestamps", func() {
		in := time.Date(2026, time.June, 15, 8, 0, 0, 0, time.UTC)
		a := &Attendance{CheckIn: &in}

		Expect(a.HoursWorked()).To(BeZero())
	})

	It("is zero when check-out does not follow check-in", func() {
		in := time.Date(2026, time.June, 15, 8, 0, 0, 0, time.UTC)
		a := &Attendance{CheckIn: &in, CheckOut: &in}

		Expect(a.HoursWorked()).To(BeZero())
	})

	It("measures the span in hours", func() {
		in := time.Date(2026, time.June, 15, 8, 0, 0, 0, time.UTC)
		out := in.Add(8*time.Hour + 30*time.Minute)
		a := &Attendance{CheckIn: &in, CheckOut: &out}

		Expect(a.HoursWorked()).To(BeNumerically("~", 8.5, 0.001))
	})
})
