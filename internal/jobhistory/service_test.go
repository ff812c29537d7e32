package jobhistory_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/jobhistory"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

func TestJobHistory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "JobHistory Suite")
}

type mockHistoryRepository struct {
	rows map[string]*jobhistory.JobHistory
}

func newMockHistoryRepository() *mockHistoryRepository {
	return &mockHistoryRepository{rows: make(map[string]*jobhistory.JobHistory)}
}

func (m *mockHistoryRepository) ListByEmployee(empno string, includeDeleted bool) ([]*jobhistory.JobHistory, error) {
	var result []*jobhistory.JobHistory
	for _, jh := range m.rows {
		if jh.EmpNo != empno {
			continue
		}
		if !includeDeleted && jh.Status == records.StatusDeleted {
			continue
		}
		result = append(result, jh)
	}
	return result, nil
}

func (m *mockHistoryRepository) GetByKey(key records.HistoryKey) (*jobhistory.JobHistory, error) {
	jh, ok := m.rows[key.String()]
	if !ok {
		return nil, jobhistory.ErrJobHistoryNotFound
	}
	copied := *jh
	return &copied, nil
}

func (m *mockHistoryRepository) Create(jh *jobhistory.JobHistory) error {
	m.rows[jh.ID()] = jh
	return nil
}

func (m *mockHistoryRepository) Update(jh *jobhistory.JobHistory) error {
	m.rows[jh.ID()] = jh
	return nil
}

func (m *mockHistoryRepository) UpdateStatus(key records.HistoryKey, status records.Status, stamp time.Time) error {
	jh, ok := m.rows[key.String()]
	if !ok {
		return errors.New("no such row")
	}
	jh.Status = status
	jh.Stamp = stamp
	return nil
}

func (m *mockHistoryRepository) CountByJob(jobcode string) (int64, error) {
	var count int64
	for _, jh := range m.rows {
		if jh.JobCode == jobcode {
			count++
		}
	}
	return count, nil
}

func (m *mockHistoryRepository) CountByDepartment(deptcode string) (int64, error) {
	var count int64
	for _, jh := range m.rows {
		if jh.DeptCode != nil && *jh.DeptCode == deptcode {
			count++
		}
	}
	return count, nil
}

type mockReferenceChecker struct {
	employees   map[string]bool
	jobs        map[string]bool
	departments map[string]bool
}

func newMockReferenceChecker() *mockReferenceChecker {
	return &mockReferenceChecker{
		employees:   make(map[string]bool),
		jobs:        make(map[string]bool),
		departments: make(map[string]bool),
	}
}

func (m *mockReferenceChecker) EmployeeExists(empno string) (bool, error) {
	return m.employees[empno], nil
}

func (m *mockReferenceChecker) JobExists(jobcode string) (bool, error) {
	return m.jobs[jobcode], nil
}

func (m *mockReferenceChecker) DepartmentExists(deptcode string) (bool, error) {
	return m.departments[deptcode], nil
}

var _ = Describe("JobHistory Service", func() {
	var (
		repo    *mockHistoryRepository
		refs    *mockReferenceChecker
		service *jobhistory.Service
		admin   rbac.Access
		regular rbac.Access
		effDate time.Time
	)

	strPtr := func(s string) *string { return &s }
	floatPtr := func(f float64) *float64 { return &f }

	BeforeEach(func() {
		repo = newMockHistoryRepository()
		refs = newMockReferenceChecker()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = jobhistory.NewService(repo, refs, logger)
		admin = rbac.Access{UserID: "admin-1", Role: rbac.RoleAdmin}
		regular = rbac.Access{UserID: "user-1", Role: rbac.RoleUser}
		effDate = time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC)

		refs.employees["1002"] = true
		refs.jobs["DEV"] = true
		refs.departments["IT"] = true
	})

	Describe("Create", func() {
		It("creates a row for valid references", func() {
			jh, err := service.Create(regular, jobhistory.CreateJobHistoryDTO{
				EmpNo:    "1002",
				JobCode:  "DEV",
				EffDate:  effDate,
				DeptCode: strPtr("IT"),
				Salary:   floatPtr(7200),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(jh.Status).To(Equal(records.StatusAdded))
			Expect(jh.ID()).To(Equal("1002,DEV,2020-07-15"))
		})

		It("rejects a missing employee reference", func() {
			_, err := service.Create(regular, jobhistory.CreateJobHistoryDTO{
				EmpNo:   "9999",
				JobCode: "DEV",
				EffDate: effDate,
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a missing job reference", func() {
			_, err := service.Create(regular, jobhistory.CreateJobHistoryDTO{
				EmpNo:   "1002",
				JobCode: "QA",
				EffDate: effDate,
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a missing department reference when one is given", func() {
			_, err := service.Create(regular, jobhistory.CreateJobHistoryDTO{
				EmpNo:    "1002",
				JobCode:  "DEV",
				EffDate:  effDate,
				DeptCode: strPtr("SALES"),
			})
			Expect(err).To(HaveOccurred())
		})

		It("allows omitting the department entirely", func() {
			_, err := service.Create(regular, jobhistory.CreateJobHistoryDTO{
				EmpNo:   "1002",
				JobCode: "DEV",
				EffDate: effDate,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects a duplicate composite key", func() {
			dto := jobhistory.CreateJobHistoryDTO{EmpNo: "1002", JobCode: "DEV", EffDate: effDate}
			_, err := service.Create(regular, dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(regular, dto)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a negative salary", func() {
			_, err := service.Create(regular, jobhistory.CreateJobHistoryDTO{
				EmpNo:   "1002",
				JobCode: "DEV",
				EffDate: effDate,
				Salary:  floatPtr(-100),
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update and Delete", func() {
		var key records.HistoryKey

		BeforeEach(func() {
			_, err := service.Create(regular, jobhistory.CreateJobHistoryDTO{
				EmpNo:    "1002",
				JobCode:  "DEV",
				EffDate:  effDate,
				DeptCode: strPtr("IT"),
				Salary:   floatPtr(7200),
			})
			Expect(err).NotTo(HaveOccurred())
			key = records.HistoryKey{EmpNo: "1002", JobCode: "DEV", EffDate: effDate}
		})

		It("updates salary and marks the row EDITED", func() {
			jh, err := service.Update(regular, key, jobhistory.UpdateJobHistoryDTO{
				Salary: floatPtr(8000),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*jh.Salary).To(Equal(8000.0))
			Expect(jh.Status).To(Equal(records.StatusEdited))
		})

		It("validates a changed department reference", func() {
			_, err := service.Update(regular, key, jobhistory.UpdateJobHistoryDTO{
				DeptCode: strPtr("SALES"),
			})
			Expect(err).To(HaveOccurred())
		})

		It("soft-deletes and then refuses edits", func() {
			Expect(service.Delete(regular, key)).To(Succeed())
			Expect(repo.rows[key.String()].Status).To(Equal(records.StatusDeleted))

			_, err := service.Update(regular, key, jobhistory.UpdateJobHistoryDTO{
				Salary: floatPtr(9000),
			})
			Expect(err).To(MatchError(records.ErrRecordDeleted))
		})

		It("rejects callers without the mutation grant", func() {
			denied := rbac.Access{
				UserID: "user-2",
				Role:   rbac.RoleUser,
				Permissions: rbac.PermissionSet{
					rbac.TableJobHistory: {Table: rbac.TableJobHistory},
				},
			}

			_, err := service.Update(denied, key, jobhistory.UpdateJobHistoryDTO{Salary: floatPtr(1)})
			Expect(err).To(MatchError(internal.ErrPermissionDenied))
			Expect(service.Delete(denied, key)).To(MatchError(internal.ErrPermissionDenied))
		})
	})

	Describe("ListByEmployee", func() {
		BeforeEach(func() {
			refs.jobs["MGR"] = true
			for _, spec := range []struct {
				job  string
				date time.Time
			}{
				{"DEV", effDate},
				{"MGR", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)},
			} {
				_, err := service.Create(regular, jobhistory.CreateJobHistoryDTO{
					EmpNo:   "1002",
					JobCode: spec.job,
					EffDate: spec.date,
				})
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(service.Delete(regular, records.HistoryKey{EmpNo: "1002", JobCode: "DEV", EffDate: effDate})).To(Succeed())
		})

		It("hides deleted rows from regular users", func() {
			views, err := service.ListByEmployee(regular, "1002")
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].JobCode).To(Equal("MGR"))
		})

		It("shows deleted rows to admins", func() {
			views, err := service.ListByEmployee(admin, "1002")
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(2))
		})
	})

	Describe("Usage counts", func() {
		It("counts rows referencing a job regardless of status", func() {
			_, err := service.Create(regular, jobhistory.CreateJobHistoryDTO{
				EmpNo:   "1002",
				JobCode: "DEV",
				EffDate: effDate,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.Delete(regular, records.HistoryKey{EmpNo: "1002", JobCode: "DEV", EffDate: effDate})).To(Succeed())

			count, err := service.CountByJob("DEV")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})
})
