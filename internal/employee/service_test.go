package employee_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
)

func TestEmployee(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Suite")
}

// Mock repository for testing
type mockEmployeeRepository struct {
	employees map[string]*employee.Employee
	listErr   error
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{employees: make(map[string]*employee.Employee)}
}

func (m *mockEmployeeRepository) List(includeDeleted bool) ([]*employee.Employee, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*employee.Employee
	for _, e := range m.employees {
		if !includeDeleted && e.Status == records.StatusDeleted {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *mockEmployeeRepository) Search(query string, includeDeleted bool) ([]*employee.Employee, error) {
	return m.List(includeDeleted)
}

func (m *mockEmployeeRepository) GetByEmpNo(empno string) (*employee.Employee, error) {
	e, ok := m.employees[empno]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *mockEmployeeRepository) GetActiveByEmail(email string) (*employee.Employee, error) {
	for _, e := range m.employees {
		if e.Email != nil && *e.Email == email && e.Status != records.StatusDeleted {
			copied := *e
			return &copied, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (m *mockEmployeeRepository) Create(e *employee.Employee) error {
	m.employees[e.EmpNo] = e
	return nil
}

func (m *mockEmployeeRepository) Update(e *employee.Employee) error {
	m.employees[e.EmpNo] = e
	return nil
}

func (m *mockEmployeeRepository) UpdateStatus(empno string, status records.Status, stamp time.Time) error {
	e, ok := m.employees[empno]
	if !ok {
		return errors.New("no such employee")
	}
	e.Status = status
	e.Stamp = stamp
	return nil
}

var _ = Describe("Employee Service", func() {
	var (
		repo    *mockEmployeeRepository
		service *employee.Service
		admin   rbac.Access
		regular rbac.Access
		noAdd   rbac.Access
	)

	strPtr := func(s string) *string { return &s }

	BeforeEach(func() {
		repo = newMockEmployeeRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(repo, logger)
		admin = rbac.Access{UserID: "admin-1", Role: rbac.RoleAdmin}
		regular = rbac.Access{UserID: "user-1", Role: rbac.RoleUser}
		noAdd = rbac.Access{
			UserID: "user-2",
			Role:   rbac.RoleUser,
			Permissions: rbac.PermissionSet{
				rbac.TableEmployee: {Table: rbac.TableEmployee, CanAdd: false, CanEdit: false, CanDelete: false},
			},
		}
	})

	Describe("Create", func() {
		It("creates with the ADDED status and a fresh stamp", func() {
			e, err := service.Create(regular, employee.CreateEmployeeDTO{
				EmpNo:     "1001",
				FirstName: strPtr("Amir"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Status).To(Equal(records.StatusAdded))
			Expect(e.Stamp).To(BeTemporally("~", time.Now(), time.Second))
		})

		It("rejects callers without the add grant", func() {
			_, err := service.Create(noAdd, employee.CreateEmployeeDTO{EmpNo: "1001"})
			Expect(err).To(MatchError(internal.ErrPermissionDenied))
		})

		It("rejects a duplicate empno", func() {
			_, err := service.Create(regular, employee.CreateEmployeeDTO{EmpNo: "1001"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(regular, employee.CreateEmployeeDTO{EmpNo: "1001"})
			Expect(err).To(HaveOccurred())
		})

		It("rejects an empty empno", func() {
			_, err := service.Create(regular, employee.CreateEmployeeDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			_, err := service.Create(regular, employee.CreateEmployeeDTO{
				EmpNo:     "1001",
				FirstName: strPtr("Amir"),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("merges fields and marks the record EDITED", func() {
			e, err := service.Update(regular, "1001", employee.UpdateEmployeeDTO{
				LastName: strPtr("Admin"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*e.FirstName).To(Equal("Amir"))
			Expect(*e.LastName).To(Equal("Admin"))
			Expect(e.Status).To(Equal(records.StatusEdited))
		})

		It("refuses to edit a deleted record", func() {
			Expect(service.Delete(regular, "1001")).To(Succeed())

			_, err := service.Update(regular, "1001", employee.UpdateEmployeeDTO{
				LastName: strPtr("Admin"),
			})
			Expect(err).To(MatchError(records.ErrRecordDeleted))
		})

		It("rejects callers without the edit grant", func() {
			_, err := service.Update(noAdd, "1001", employee.UpdateEmployeeDTO{
				LastName: strPtr("Admin"),
			})
			Expect(err).To(MatchError(internal.ErrPermissionDenied))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			_, err := service.Create(regular, employee.CreateEmployeeDTO{EmpNo: "1001"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("soft-deletes: the row keeps existing with DELETED status", func() {
			Expect(service.Delete(regular, "1001")).To(Succeed())
			Expect(repo.employees["1001"].Status).To(Equal(records.StatusDeleted))
		})

		It("refuses a second delete of the same record", func() {
			Expect(service.Delete(regular, "1001")).To(Succeed())
			Expect(service.Delete(regular, "1001")).To(MatchError(records.ErrRecordDeleted))
		})

		It("rejects callers without the delete grant", func() {
			Expect(service.Delete(noAdd, "1001")).To(MatchError(internal.ErrPermissionDenied))
		})
	})

	Describe("Visibility", func() {
		BeforeEach(func() {
			_, err := service.Create(regular, employee.CreateEmployeeDTO{EmpNo: "1001"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(regular, employee.CreateEmployeeDTO{EmpNo: "1002"})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.Delete(regular, "1002")).To(Succeed())
		})

		It("hides deleted rows from regular users", func() {
			views, err := service.List(regular)
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].EmpNo).To(Equal("1001"))
		})

		It("shows deleted rows to admins", func() {
			views, err := service.List(admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(2))
		})

		It("hides a deleted record from a direct fetch by regular users", func() {
			_, err := service.Get(regular, "1002")
			Expect(err).To(MatchError(employee.ErrEmployeeNotFound))

			view, err := service.Get(admin, "1002")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Status).To(Equal(records.StatusDeleted))
		})
	})

	Describe("View annotations", func() {
		It("disables edit and delete on deleted rows even for admins", func() {
			_, err := service.Create(regular, employee.CreateEmployeeDTO{EmpNo: "1001"})
			Expect(err).NotTo(HaveOccurred())
			Expect(service.Delete(regular, "1001")).To(Succeed())

			view, err := service.Get(admin, "1001")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.CanEdit).To(BeFalse())
			Expect(view.CanDelete).To(BeFalse())
		})
	})
})
