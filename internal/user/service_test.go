package user_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/jobhistory"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type mockEmployeeLookup struct {
	byEmail map[string]*employee.Employee
}

func (m *mockEmployeeLookup) GetActiveByEmail(email string) (*employee.Employee, error) {
	if e, ok := m.byEmail[email]; ok {
		return e, nil
	}
	return nil, employee.ErrEmployeeNotFound
}

type mockHistoryLister struct {
	views      []jobhistory.View
	lastEmpNo  string
	lastAccess rbac.Access
}

func (m *mockHistoryLister) ListByEmployee(access rbac.Access, empno string) ([]jobhistory.View, error) {
	m.lastAccess = access
	m.lastEmpNo = empno
	return m.views, nil
}

var _ = Describe("User Service", func() {
	var (
		lookup  *mockEmployeeLookup
		history *mockHistoryLister
		service *user.Service
	)

	strPtr := func(s string) *string { return &s }

	BeforeEach(func() {
		lookup = &mockEmployeeLookup{byEmail: map[string]*employee.Employee{}}
		history = &mockHistoryLister{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(lookup, history, logger)
	})

	Describe("ProfileFor", func() {
		It("spells out every table grant for a regular user", func() {
			u := &auth.User{
				ID:       "user-1",
				Email:    "staff@hr.local",
				FullName: "Staff Member",
				Access: rbac.Access{
					UserID: "user-1",
					Role:   rbac.RoleUser,
					Permissions: rbac.PermissionSet{
						rbac.TableEmployee: {Table: rbac.TableEmployee, CanAdd: true, CanEdit: true, CanDelete: false},
					},
				},
			}

			profile := service.ProfileFor(u)
			Expect(profile.ID).To(Equal("user-1"))
			Expect(profile.Role).To(Equal(rbac.RoleUser))
			Expect(profile.Permissions).To(HaveLen(4))

			Expect(profile.Permissions[0].Table).To(Equal("employee"))
			Expect(profile.Permissions[0].CanAdd).To(BeTrue())
			Expect(profile.Permissions[0].CanDelete).To(BeFalse())

			// tables without an explicit row default to full access
			Expect(profile.Permissions[1].Table).To(Equal("job"))
			Expect(profile.Permissions[1].CanDelete).To(BeTrue())
		})

		It("grants everything to admins regardless of stored rows", func() {
			u := &auth.User{
				ID:    "admin-1",
				Email: "admin@hr.local",
				Access: rbac.Access{
					UserID: "admin-1",
					Role:   rbac.RoleAdmin,
					Permissions: rbac.PermissionSet{
						rbac.TableJob: {Table: rbac.TableJob},
					},
				},
			}

			profile := service.ProfileFor(u)
			for _, perm := range profile.Permissions {
				Expect(perm.CanAdd).To(BeTrue())
				Expect(perm.CanEdit).To(BeTrue())
				Expect(perm.CanDelete).To(BeTrue())
			}
		})

		It("denies everything to blocked users", func() {
			u := &auth.User{
				ID:    "blocked-1",
				Email: "blocked@hr.local",
				Access: rbac.Access{
					UserID: "blocked-1",
					Role:   rbac.RoleBlocked,
				},
			}

			profile := service.ProfileFor(u)
			for _, perm := range profile.Permissions {
				Expect(perm.CanAdd).To(BeFalse())
				Expect(perm.CanEdit).To(BeFalse())
				Expect(perm.CanDelete).To(BeFalse())
			}
		})
	})

	Describe("EmployeeProfileFor", func() {
		var caller *auth.User

		BeforeEach(func() {
			caller = &auth.User{
				ID:    "user-1",
				Email: "ada@hr.local",
				Access: rbac.Access{
					UserID: "user-1",
					Role:   rbac.RoleUser,
				},
			}
		})

		It("links the caller's email to its personnel record and history", func() {
			lookup.byEmail["ada@hr.local"] = &employee.Employee{
				EmpNo:     "1001",
				FirstName: strPtr("Ada"),
				Email:     strPtr("ada@hr.local"),
			}
			history.views = []jobhistory.View{
				{JobHistory: jobhistory.JobHistory{
					EmpNo:   "1001",
					JobCode: "MGR",
					EffDate: time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC),
				}},
			}

			profile, err := service.EmployeeProfileFor(caller)
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.Employee.EmpNo).To(Equal("1001"))
			Expect(profile.History).To(HaveLen(1))
			Expect(history.lastEmpNo).To(Equal("1001"))
			Expect(history.lastAccess.UserID).To(Equal("user-1"))
		})

		It("reports not-found when no record carries the caller's email", func() {
			_, err := service.EmployeeProfileFor(caller)
			Expect(err).To(Equal(employee.ErrEmployeeNotFound))
		})
	})
})
