package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
	recordsPostgres "github.com/frahmantamala/hr-management/internal/records/postgres"
)

func TestRecordsPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Records Postgres Suite")
}

var _ = Describe("Records Repository", func() {
	var (
		db   *gorm.DB
		repo records.Repository
	)

	strPtr := func(s string) *string { return &s }
	date := func(year, month, day int) time.Time {
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&hrDatamodel.Employee{},
			&hrDatamodel.Job{},
			&hrDatamodel.Department{},
			&hrDatamodel.JobHistory{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = recordsPostgres.NewRecordsRepository(db)
	})

	Describe("ListDeleted", func() {
		BeforeEach(func() {
			Expect(db.Create(&hrDatamodel.Employee{
				EmpNo:     "1001",
				FirstName: strPtr("Ada"),
				LastName:  strPtr("Lovelace"),
				Status:    hrDatamodel.StatusDeleted,
				Stamp:     date(2026, 1, 10),
			}).Error).NotTo(HaveOccurred())
			Expect(db.Create(&hrDatamodel.Employee{
				EmpNo:     "1002",
				FirstName: strPtr("Grace"),
				LastName:  strPtr("Hopper"),
				Status:    hrDatamodel.StatusDeleted,
				Stamp:     date(2026, 2, 20),
			}).Error).NotTo(HaveOccurred())
			Expect(db.Create(&hrDatamodel.Employee{
				EmpNo:  "1003",
				Status: hrDatamodel.StatusAdded,
				Stamp:  date(2026, 3, 1),
			}).Error).NotTo(HaveOccurred())
		})

		It("returns only deleted rows, most recently deleted first", func() {
			result, err := repo.ListDeleted(rbac.TableEmployee)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(2))
			Expect(result[0].ID).To(Equal("1002"))
			Expect(result[1].ID).To(Equal("1001"))
		})

		It("renders the employee display name from name and number", func() {
			result, err := repo.ListDeleted(rbac.TableEmployee)
			Expect(err).NotTo(HaveOccurred())
			Expect(result[1].DisplayName).To(Equal("Ada Lovelace (1001)"))
			Expect(result[1].TableName).To(Equal("employee"))
		})

		It("falls back to the code when a job has no description", func() {
			Expect(db.Create(&hrDatamodel.Job{
				JobCode: "DEV",
				Status:  hrDatamodel.StatusDeleted,
				Stamp:   date(2026, 1, 1),
			}).Error).NotTo(HaveOccurred())
			Expect(db.Create(&hrDatamodel.Job{
				JobCode: "MGR",
				JobDesc: strPtr("Manager"),
				Status:  hrDatamodel.StatusDeleted,
				Stamp:   date(2026, 2, 1),
			}).Error).NotTo(HaveOccurred())

			result, err := repo.ListDeleted(rbac.TableJob)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(2))
			Expect(result[0].DisplayName).To(Equal("Manager (MGR)"))
			Expect(result[1].DisplayName).To(Equal("DEV (DEV)"))
		})

		It("identifies history rows by their composite key", func() {
			Expect(db.Create(&hrDatamodel.JobHistory{
				EmpNo:   "1001",
				JobCode: "MGR",
				EffDate: date(2018, 2, 1),
				Status:  hrDatamodel.StatusDeleted,
				Stamp:   date(2026, 1, 1),
			}).Error).NotTo(HaveOccurred())

			result, err := repo.ListDeleted(rbac.TableJobHistory)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].ID).To(Equal("1001,MGR,2018-02-01"))
			Expect(result[0].DisplayName).To(Equal("Employee: 1001, Job: MGR, Date: 2018-02-01"))
		})
	})

	Describe("Restore", func() {
		BeforeEach(func() {
			Expect(db.Create(&hrDatamodel.Department{
				DeptCode: "HR",
				DeptName: strPtr("Human Resources"),
				Status:   hrDatamodel.StatusDeleted,
				Stamp:    date(2026, 1, 1),
			}).Error).NotTo(HaveOccurred())
			Expect(db.Create(&hrDatamodel.Department{
				DeptCode: "IT",
				DeptName: strPtr("Information Technology"),
				Status:   hrDatamodel.StatusAdded,
				Stamp:    date(2026, 1, 1),
			}).Error).NotTo(HaveOccurred())
		})

		It("flips a deleted row to restored with the given stamp", func() {
			stamp := date(2026, 4, 1)
			err := repo.Restore(rbac.TableDepartment, "HR", stamp)
			Expect(err).NotTo(HaveOccurred())

			var row hrDatamodel.Department
			Expect(db.Where("deptcode = ?", "HR").First(&row).Error).NotTo(HaveOccurred())
			Expect(row.Status).To(Equal(hrDatamodel.StatusRestored))
			Expect(row.Stamp).To(BeTemporally("==", stamp))
		})

		It("refuses to restore a row that is not deleted", func() {
			err := repo.Restore(rbac.TableDepartment, "IT", time.Now().UTC())
			Expect(err).To(Equal(records.ErrRecordNotDeleted))

			var row hrDatamodel.Department
			Expect(db.Where("deptcode = ?", "IT").First(&row).Error).NotTo(HaveOccurred())
			Expect(row.Status).To(Equal(hrDatamodel.StatusAdded))
		})

		It("reports unknown record ids as not deleted", func() {
			err := repo.Restore(rbac.TableDepartment, "GONE", time.Now().UTC())
			Expect(err).To(Equal(records.ErrRecordNotDeleted))
		})

		It("restores history rows addressed by composite key", func() {
			Expect(db.Create(&hrDatamodel.JobHistory{
				EmpNo:   "1001",
				JobCode: "MGR",
				EffDate: date(2018, 2, 1),
				Status:  hrDatamodel.StatusDeleted,
				Stamp:   date(2026, 1, 1),
			}).Error).NotTo(HaveOccurred())

			err := repo.Restore(rbac.TableJobHistory, "1001,MGR,2018-02-01", time.Now().UTC())
			Expect(err).NotTo(HaveOccurred())

			var row hrDatamodel.JobHistory
			Expect(db.Where("empno = ? AND jobcode = ?", "1001", "MGR").First(&row).Error).NotTo(HaveOccurred())
			Expect(row.Status).To(Equal(hrDatamodel.StatusRestored))
		})

		It("rejects malformed history keys", func() {
			err := repo.Restore(rbac.TableJobHistory, "not-a-key", time.Now().UTC())
			Expect(err).To(HaveOccurred())
		})
	})
})
