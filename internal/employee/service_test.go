package employee_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/empmanager/personnel-management/internal"
	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/empmanager/personnel-management/internal/employee"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

type mockEmployeeRepository struct {
	employees map[int64]*employee.Employee
	nextID    int64
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{employees: make(map[int64]*employee.Employee), nextID: 1}
}

func (m *mockEmployeeRepository) List(rc auth.RoleContext) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		if rc.Allows(e) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockEmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (m *mockEmployeeRepository) GetByUserID(userID int64) (*employee.Employee, error) {
	for _, e := range m.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepository) GetByEmail(email string) (*employee.Employee, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepository) Create(e *employee.Employee) error {
	e.ID = m.nextID
	m.nextID++
	m.employees[e.ID] = e
	return nil
}

func (m *mockEmployeeRepository) Update(e *employee.Employee) error {
	m.employees[e.ID] = e
	return nil
}

func (m *mockEmployeeRepository) Delete(id int64) error {
	delete(m.employees, id)
	return nil
}

func accountID(v int64) *int64 { return &v }

var _ = Describe("EmployeeService", func() {
	var (
		svc  *employee.Service
		repo *mockEmployeeRepository

		adminRC      auth.RoleContext
		managerRC    auth.RoleContext
		enterpriseRC auth.RoleContext
		employeeRC   auth.RoleContext

		hireDate time.Time
	)

	seedEmployee := func(matricule, email string, departmentID int64, departmentName, direction string, userID *int64) *employee.Employee {
		e := &employee.Employee{
			Matricule:      matricule,
			FirstName:      "Test",
			LastName:       "Agent",
			Email:          email,
			HireDate:       hireDate,
			DepartmentID:   departmentID,
			DepartmentName: departmentName,
			Direction:      direction,
			Status:         employee.StatusActive,
			UserID:         userID,
		}
		Expect(repo.Create(e)).To(Succeed())
		return e
	}

	BeforeEach(func() {
		repo = newMockEmployeeRepository()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc = employee.NewService(repo, logger)
		hireDate = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

		adminRC = auth.RoleContext{Role: auth.RoleAdmin, UserID: 1}
		managerRC = auth.RoleContext{Role: auth.RoleManager, UserID: 2, Directions: []string{"DRH"}}
		enterpriseRC = auth.RoleContext{Role: auth.RoleEnterprise, UserID: 3, DepartmentID: 1}
		employeeRC = auth.RoleContext{Role: auth.RoleEmployee, UserID: 10}
	})

	Describe("ListEmployees", func() {
		BeforeEach(func() {
			seedEmployee("MAT-001", "a@example.com", 1, "SODECI", "DRH", accountID(10))
			seedEmployee("MAT-002", "b@example.com", 1, "SODECI", "DAF", nil)
			seedEmployee("MAT-003", "c@example.com", 2, "CIE", "DRH", nil)
		})

		It("shows an admin everyone", func() {
			employees, err := svc.ListEmployees(adminRC)

			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(3))
		})

		It("restricts a manager to its directions", func() {
			employees, err := svc.ListEmployees(managerRC)

			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(2))
		})

		It("restricts an enterprise account to its department", func() {
			employees, err := svc.ListEmployees(enterpriseRC)

			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(2))
		})

		It("restricts an employee to its own record", func() {
			employees, err := svc.ListEmployees(employeeRC)

			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(1))
			Expect(employees[0].Matricule).To(Equal("MAT-001"))
		})
	})

	Describe("GetEmployee", func() {
		It("answers not-found for reads outside the caller's scope", func() {
			e := seedEmployee("MAT-003", "c@example.com", 2, "CIE", "DSI", nil)

			_, err := svc.GetEmployee(enterpriseRC, e.ID)

			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})

		It("reports missing employees", func() {
			_, err := svc.GetEmployee(adminRC, 42)

			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})
	})

	Describe("CreateEmployee", func() {
		var dto employee.CreateEmployeeDTO

		BeforeEach(func() {
			salary := decimal.NewFromInt(450000)
			dto = employee.CreateEmployeeDTO{
				Matricule:    "MAT-010",
				FirstName:    "Awa",
				LastName:     "Kone",
				Email:        "awa.kone@example.com",
				HireDate:     hireDate,
				DepartmentID: 1,
				Direction:    "DRH",
				Salary:       &salary,
			}
		})

		It("is staff only", func() {
			_, err := svc.CreateEmployee(enterpriseRC, dto)
			Expect(err).To(MatchError(internal.ErrForbidden))

			e, err := svc.CreateEmployee(managerRC, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Status).To(Equal(employee.StatusActive))
			Expect(e.Salary.Equal(decimal.NewFromInt(450000))).To(BeTrue())
		})

		It("rejects a duplicate email", func() {
			seedEmployee("MAT-001", "awa.kone@example.com", 1, "SODECI", "DRH", nil)

			_, err := svc.CreateEmployee(adminRC, dto)

			Expect(err).To(MatchError(internal.ErrDuplicateEmail))
		})

		It("rejects an invalid email", func() {
			dto.Email = "not-an-email"

			_, err := svc.CreateEmployee(adminRC, dto)

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("UpdateEmployee", func() {
		It("applies only the provided fields", func() {
			e := seedEmployee("MAT-001", "a@example.com", 1, "SODECI", "DRH", nil)
			position := "Accountant"

			updated, err := svc.UpdateEmployee(adminRC, e.ID, employee.UpdateEmployeeDTO{Position: &position})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Position).To(Equal("Accountant"))
			Expect(updated.Email).To(Equal("a@example.com"))
		})

		It("rejects taking another employee's email", func() {
			e := seedEmployee("MAT-001", "a@example.com", 1, "SODECI", "DRH", nil)
			seedEmployee("MAT-002", "b@example.com", 1, "SODECI", "DRH", nil)
			email := "b@example.com"

			_, err := svc.UpdateEmployee(adminRC, e.ID, employee.UpdateEmployeeDTO{Email: &email})

			Expect(err).To(MatchError(internal.ErrDuplicateEmail))
		})
	})

	Describe("DeleteEmployee", func() {
		It("is admin only", func() {
			e := seedEmployee("MAT-001", "a@example.com", 1, "SODECI", "DRH", nil)

			Expect(svc.DeleteEmployee(managerRC, e.ID)).To(MatchError(internal.ErrForbidden))
			Expect(svc.DeleteEmployee(adminRC, e.ID)).To(Succeed())
			Expect(svc.DeleteEmployee(adminRC, e.ID)).To(MatchError(internal.ErrEmployeeNotFound))
		})
	})

	Describe("EmployeesByDepartment", func() {
		It("groups visible employees ordered by department name", func() {
			seedEmployee("MAT-001", "a@example.com", 1, "SODECI", "DRH", nil)
			seedEmployee("MAT-002", "b@example.com", 1, "SODECI", "DRH", nil)
			seedEmployee("MAT-003", "c@example.com", 2, "CIE", "DRH", nil)

			groups, err := svc.EmployeesByDepartment(adminRC)

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(HaveLen(2))
			Expect(groups[0].DepartmentName).To(Equal("CIE"))
			Expect(groups[0].Employees).To(HaveLen(1))
			Expect(groups[1].DepartmentName).To(Equal("SODECI"))
			Expect(groups[1].Employees).To(HaveLen(2))
		})
	})
})

var _ = Describe("Employee", func() {
	Describe("Age", func() {
		now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

		It("is -1 when the birth date is unknown", func() {
			e := &employee.Employee{}

			Expect(e.Age(now)).To(Equal(-1))
		})

		It("counts whole years before the anniversary", func() {
			birth := time.Date(1990, time.December, 1, 0, 0, 0, 0, time.UTC)
			e := &employee.Employee{BirthDate: &birth}

			Expect(e.Age(now)).To(Equal(35))
		})

		It("counts whole years after the anniversary", func() {
			birth := time.Date(1990, time.March, 1, 0, 0, 0, 0, time.UTC)
			e := &employee.Employee{BirthDate: &birth}

			Expect(e.Age(now)).To(Equal(36))
		})
	})
})
