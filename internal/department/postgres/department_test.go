package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/empmanager/personnel-management/internal/department"
)

func TestDepartmentRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Repository Suite")
}

type SQLiteDepartment struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Manager     string
	Description string
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteDepartment) TableName() string { return "departments" }

type SQLiteEmployee struct {
	ID           int64  `gorm:"primaryKey"`
	Matricule    string `gorm:"not null"`
	LastName     string `gorm:"column:last_name"`
	DepartmentID int64  `gorm:"column:department_id"`
	UserID       *int64 `gorm:"column:user_id"`
}

func (SQLiteEmployee) TableName() string { return "employees" }

var _ = Describe("DepartmentRepository", func() {
	var (
		db   *gorm.DB
		repo department.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteDepartment{}, &SQLiteEmployee{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewDepartmentRepository(db)

		departments := []SQLiteDepartment{
			{ID: 1, Name: "SODECI", Manager: "K. Yao"},
			{ID: 2, Name: "CIE"},
		}
		Expect(db.Create(&departments).Error).NotTo(HaveOccurred())

		uid := int64(10)
		employees := []SQLiteEmployee{
			{ID: 100, Matricule: "MAT-001", LastName: "Kone", DepartmentID: 1, UserID: &uid},
			{ID: 101, Matricule: "MAT-002", LastName: "Brou", DepartmentID: 1},
			{ID: 102, Matricule: "MAT-003", LastName: "Diaby", DepartmentID: 2},
		}
		Expect(db.Create(&employees).Error).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("List", func() {
		It("carries the headcount per department, ordered by name", func() {
			departments, err := repo.List()

			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(2))
			Expect(departments[0].Name).To(Equal("CIE"))
			Expect(departments[0].EmployeeCount).To(Equal(int64(1)))
			Expect(departments[1].Name).To(Equal("SODECI"))
			Expect(departments[1].EmployeeCount).To(Equal(int64(2)))
		})

		It("counts zero for an empty department", func() {
			Expect(db.Create(&SQLiteDepartment{ID: 3, Name: "Orange CI"}).Error).NotTo(HaveOccurred())

			departments, err := repo.List()

			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(3))
			Expect(departments[1].Name).To(Equal("Orange CI"))
			Expect(departments[1].EmployeeCount).To(BeZero())
		})
	})

	Describe("ListByIDs", func() {
		It("returns only the named departments", func() {
			departments, err := repo.ListByIDs([]int64{2})

			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(1))
			Expect(departments[0].Name).To(Equal("CIE"))
		})
	})

	Describe("ListByOwner", func() {
		It("resolves the department of the linked personnel record", func() {
			departments, err := repo.ListByOwner(10)

			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(1))
			Expect(departments[0].Name).To(Equal("SODECI"))
		})

		It("is empty for accounts without a personnel record", func() {
			departments, err := repo.ListByOwner(99)

			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(BeEmpty())
		})
	})

	Describe("GetByID", func() {
		It("loads one department with its headcount", func() {
			d, err := repo.GetByID(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(d.Name).To(Equal("SODECI"))
			Expect(d.EmployeeCount).To(Equal(int64(2)))
		})

		It("returns gorm.ErrRecordNotFound for missing ids", func() {
			_, err := repo.GetByID(99)

			Expect(err).To(MatchError(gorm.ErrRecordNotFound))
		})
	})
})
