package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/empmanager/personnel-management/internal/auth"
	"github.com/empmanager/personnel-management/internal/report"
)

func TestStatsRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Stats Repository Suite")
}

type SQLiteDepartment struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (SQLiteDepartment) TableName() string { return "departments" }

type SQLiteEmployee struct {
	ID           int64  `gorm:"primaryKey"`
	LastName     string `gorm:"column:last_name"`
	DepartmentID int64  `gorm:"column:department_id"`
	Direction    string `gorm:"column:direction"`
	UserID       *int64 `gorm:"column:user_id"`
}

func (SQLiteEmployee) TableName() string { return "employees" }

type SQLiteAttendance struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID int64     `gorm:"column:employee_id"`
	Date       time.Time `gorm:"column:date"`
	Status     string    `gorm:"column:status"`
}

func (SQLiteAttendance) TableName() string { return "attendances" }

type SQLiteLeave struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID int64     `gorm:"column:employee_id"`
	Type       string    `gorm:"column:type"`
	Status     string    `gorm:"column:status"`
	StartDate  time.Time `gorm:"column:start_date"`
	EndDate    time.Time `gorm:"column:end_date"`
}

func (SQLiteLeave) TableName() string { return "leaves" }

var _ = Describe("StatsRepository", func() {
	var (
		db   *gorm.DB
		repo report.StatsRepository

		adminRC auth.RoleContext
		today   time.Time
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteDepartment{}, &SQLiteEmployee{}, &SQLiteAttendance{}, &SQLiteLeave{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewStatsRepository(db)
		adminRC = auth.RoleContext{Role: auth.RoleAdmin, UserID: 1}
		today = time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

		Expect(db.Create(&[]SQLiteDepartment{{ID: 1, Name: "SODECI"}, {ID: 2, Name: "CIE"}}).Error).NotTo(HaveOccurred())

		uid := int64(10)
		employees := []SQLiteEmployee{
			{ID: 100, LastName: "Kone", DepartmentID: 1, Direction: "DRH", UserID: &uid},
			{ID: 101, LastName: "Brou", DepartmentID: 1, Direction: "DRH"},
			{ID: 102, LastName: "Diaby", DepartmentID: 2, Direction: "DAF"},
		}
		Expect(db.Create(&employees).Error).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("CountEmployees", func() {
		It("counts all employees for an admin", func() {
			count, err := repo.CountEmployees(adminRC)

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(3)))
		})

		It("restricts a manager to their directions", func() {
			rc := auth.RoleContext{Role: auth.RoleManager, UserID: 2, Directions: []string{"DAF"}}

			count, err := repo.CountEmployees(rc)

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("CountPresent", func() {
		BeforeEach(func() {
			records := []SQLiteAttendance{
				{ID: 1, EmployeeID: 100, Date: today, Status: "present"},
				{ID: 2, EmployeeID: 101, Date: today, Status: "late"},
				{ID: 3, EmployeeID: 102, Date: today, Status: "half-day"},
				{ID: 4, EmployeeID: 100, Date: today.AddDate(0, 0, -1), Status: "present"},
			}
			Expect(db.Create(&records).Error).NotTo(HaveOccurred())
		})

		It("counts only records marked present on the given date", func() {
			count, err := repo.CountPresent(adminRC, today)

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("applies the enterprise department scope", func() {
			rc := auth.RoleContext{Role: auth.RoleEnterprise, UserID: 3, DepartmentID: 2}

			count, err := repo.CountPresent(rc, today)

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("CountOnApprovedLeave", func() {
		It("counts approved leaves covering the date", func() {
			leaves := []SQLiteLeave{
				{ID: 1, EmployeeID: 100, Type: "paid", Status: "approved", StartDate: today.AddDate(0, 0, -2), EndDate: today.AddDate(0, 0, 2)},
				{ID: 2, EmployeeID: 101, Type: "paid", Status: "pending", StartDate: today, EndDate: today.AddDate(0, 0, 2)},
				{ID: 3, EmployeeID: 102, Type: "paid", Status: "approved", StartDate: today.AddDate(0, 0, 1), EndDate: today.AddDate(0, 0, 3)},
			}
			Expect(db.Create(&leaves).Error).NotTo(HaveOccurred())

			count, err := repo.CountOnApprovedLeave(adminRC, today)

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})
})
