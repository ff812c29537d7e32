package rbac_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/rbac"
)

// Mock repository for testing
type mockRBACRepository struct {
	roles          map[string]rbac.Role
	permissions    map[string][]rbac.TablePermission
	roleError      error
	permError      error
	upsertedRoles  map[string]rbac.Role
	upsertedPerms  map[string]rbac.TablePermission
	getPermissions map[string]*rbac.TablePermission
}

func newMockRBACRepository() *mockRBACRepository {
	return &mockRBACRepository{
		roles:          make(map[string]rbac.Role),
		permissions:    make(map[string][]rbac.TablePermission),
		upsertedRoles:  make(map[string]rbac.Role),
		upsertedPerms:  make(map[string]rbac.TablePermission),
		getPermissions: make(map[string]*rbac.TablePermission),
	}
}

func (m *mockRBACRepository) GetLatestRole(userID string) (rbac.Role, error) {
	if m.roleError != nil {
		return "", m.roleError
	}
	role, ok := m.roles[userID]
	if !ok {
		return "", rbac.ErrRoleNotFound
	}
	return role, nil
}

func (m *mockRBACRepository) GetAllLatestRoles() ([]rbac.UserRoleView, error) {
	views := make([]rbac.UserRoleView, 0, len(m.roles))
	for id, role := range m.roles {
		views = append(views, rbac.UserRoleView{UserID: id, Role: role})
	}
	return views, nil
}

func (m *mockRBACRepository) GetPermissions(userID string) ([]rbac.TablePermission, error) {
	if m.permError != nil {
		return nil, m.permError
	}
	return m.permissions[userID], nil
}

func (m *mockRBACRepository) GetAllPermissions() ([]rbac.UserPermissionView, error) {
	var views []rbac.UserPermissionView
	for id, perms := range m.permissions {
		for _, p := range perms {
			views = append(views, rbac.UserPermissionView{
				UserID:    id,
				TableName: p.Table.String(),
				CanAdd:    p.CanAdd,
				CanEdit:   p.CanEdit,
				CanDelete: p.CanDelete,
			})
		}
	}
	return views, nil
}

func (m *mockRBACRepository) GetPermission(userID string, table rbac.TableKind) (*rbac.TablePermission, error) {
	if m.permError != nil {
		return nil, m.permError
	}
	return m.getPermissions[userID+"/"+table.String()], nil
}

func (m *mockRBACRepository) UpsertRole(userID string, role rbac.Role, updatedAt time.Time) error {
	m.upsertedRoles[userID] = role
	return nil
}

func (m *mockRBACRepository) UpsertPermission(userID string, perm rbac.TablePermission) error {
	m.upsertedPerms[userID+"/"+perm.Table.String()] = perm
	return nil
}

var _ = Describe("RBAC Service", func() {
	var (
		repo    *mockRBACRepository
		service *rbac.Service
		admin   rbac.Access
		regular rbac.Access
	)

	BeforeEach(func() {
		repo = newMockRBACRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = rbac.NewService(repo, logger)
		admin = rbac.Access{UserID: "admin-1", Role: rbac.RoleAdmin}
		regular = rbac.Access{UserID: "user-1", Role: rbac.RoleUser}
	})

	Describe("ResolveRole", func() {
		It("returns the stored role", func() {
			repo.roles["u1"] = rbac.RoleAdmin
			Expect(service.ResolveRole("u1")).To(Equal(rbac.RoleAdmin))
		})

		It("falls back to user when no role row exists", func() {
			Expect(service.ResolveRole("unknown")).To(Equal(rbac.RoleUser))
		})

		It("falls back to user when the fetch fails", func() {
			repo.roleError = errors.New("connection refused")
			Expect(service.ResolveRole("u1")).To(Equal(rbac.RoleUser))
		})

		It("falls back to user when the stored value is not a known role", func() {
			repo.roles["u1"] = rbac.Role("manager")
			Expect(service.ResolveRole("u1")).To(Equal(rbac.RoleUser))
		})
	})

	Describe("AccessFor", func() {
		It("combines role and permission rows into a snapshot", func() {
			repo.roles["u1"] = rbac.RoleUser
			repo.permissions["u1"] = []rbac.TablePermission{
				{Table: rbac.TableEmployee, CanAdd: true, CanEdit: true, CanDelete: false},
			}

			access := service.AccessFor("u1")
			Expect(access.UserID).To(Equal("u1"))
			Expect(access.Role).To(Equal(rbac.RoleUser))
			Expect(access.Can(rbac.TableEmployee, rbac.ActionDelete)).To(BeFalse())
			Expect(access.Can(rbac.TableJob, rbac.ActionDelete)).To(BeTrue())
		})

		It("keeps default grants when the permission fetch fails", func() {
			repo.roles["u1"] = rbac.RoleUser
			repo.permError = errors.New("connection refused")

			access := service.AccessFor("u1")
			Expect(access.Can(rbac.TableEmployee, rbac.ActionAdd)).To(BeTrue())
		})
	})

	Describe("UpdateRole", func() {
		It("writes a new role row when called by an admin", func() {
			err := service.UpdateRole(admin, "target", rbac.RoleBlocked)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.upsertedRoles["target"]).To(Equal(rbac.RoleBlocked))
		})

		It("rejects non-admin callers", func() {
			err := service.UpdateRole(regular, "target", rbac.RoleAdmin)
			Expect(err).To(MatchError(internal.ErrAdminRequired))
			Expect(repo.upsertedRoles).To(BeEmpty())
		})

		It("rejects unknown roles", func() {
			err := service.UpdateRole(admin, "target", rbac.Role("owner"))
			Expect(err).To(HaveOccurred())
			Expect(repo.upsertedRoles).To(BeEmpty())
		})
	})

	Describe("UpdatePermission", func() {
		boolPtr := func(b bool) *bool { return &b }

		It("defaults unset fields to true when no row exists", func() {
			dto := rbac.UpdatePermissionDTO{CanDelete: boolPtr(false)}
			err := service.UpdatePermission(admin, "target", rbac.TableEmployee, dto)
			Expect(err).NotTo(HaveOccurred())

			written := repo.upsertedPerms["target/employee"]
			Expect(written.CanAdd).To(BeTrue())
			Expect(written.CanEdit).To(BeTrue())
			Expect(written.CanDelete).To(BeFalse())
		})

		It("merges partial updates into the existing row", func() {
			repo.getPermissions["target/job"] = &rbac.TablePermission{
				Table: rbac.TableJob, CanAdd: false, CanEdit: false, CanDelete: false,
			}

			dto := rbac.UpdatePermissionDTO{CanEdit: boolPtr(true)}
			err := service.UpdatePermission(admin, "target", rbac.TableJob, dto)
			Expect(err).NotTo(HaveOccurred())

			written := repo.upsertedPerms["target/job"]
			Expect(written.CanAdd).To(BeFalse())
			Expect(written.CanEdit).To(BeTrue())
			Expect(written.CanDelete).To(BeFalse())
		})

		It("rejects non-admin callers", func() {
			dto := rbac.UpdatePermissionDTO{CanAdd: boolPtr(false)}
			err := service.UpdatePermission(regular, "target", rbac.TableEmployee, dto)
			Expect(err).To(MatchError(internal.ErrAdminRequired))
		})

		It("rejects an empty update", func() {
			err := service.UpdatePermission(admin, "target", rbac.TableEmployee, rbac.UpdatePermissionDTO{})
			Expect(err).To(HaveOccurred())
			Expect(repo.upsertedPerms).To(BeEmpty())
		})
	})

	Describe("ListUserRoles", func() {
		It("requires an admin caller", func() {
			_, err := service.ListUserRoles(regular)
			Expect(err).To(MatchError(internal.ErrAdminRequired))

			repo.roles["u1"] = rbac.RoleUser
			views, err := service.ListUserRoles(admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(1))
		})
	})
})
