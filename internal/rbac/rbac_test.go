package rbac_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal/rbac"
)

func TestRBAC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Suite")
}

var _ = Describe("Access", func() {
	Describe("Can", func() {
		It("allows everything for admins, even with an explicit deny row", func() {
			access := rbac.Access{
				UserID: "admin-1",
				Role:   rbac.RoleAdmin,
				Permissions: rbac.PermissionSet{
					rbac.TableEmployee: {Table: rbac.TableEmployee, CanAdd: false, CanEdit: false, CanDelete: false},
				},
			}

			for _, table := range rbac.AllTables() {
				Expect(access.Can(table, rbac.ActionAdd)).To(BeTrue())
				Expect(access.Can(table, rbac.ActionEdit)).To(BeTrue())
				Expect(access.Can(table, rbac.ActionDelete)).To(BeTrue())
			}
		})

		It("denies everything for blocked users, even with an explicit allow row", func() {
			access := rbac.Access{
				UserID: "blocked-1",
				Role:   rbac.RoleBlocked,
				Permissions: rbac.PermissionSet{
					rbac.TableJob: {Table: rbac.TableJob, CanAdd: true, CanEdit: true, CanDelete: true},
				},
			}

			for _, table := range rbac.AllTables() {
				Expect(access.Can(table, rbac.ActionAdd)).To(BeFalse())
				Expect(access.Can(table, rbac.ActionEdit)).To(BeFalse())
				Expect(access.Can(table, rbac.ActionDelete)).To(BeFalse())
			}
		})

		It("allows regular users on tables with no permission row", func() {
			access := rbac.Access{
				UserID:      "user-1",
				Role:        rbac.RoleUser,
				Permissions: rbac.PermissionSet{},
			}

			Expect(access.Can(rbac.TableEmployee, rbac.ActionAdd)).To(BeTrue())
			Expect(access.Can(rbac.TableDepartment, rbac.ActionDelete)).To(BeTrue())
		})

		It("follows the row's booleans when a permission row exists", func() {
			access := rbac.Access{
				UserID: "user-1",
				Role:   rbac.RoleUser,
				Permissions: rbac.PermissionSet{
					rbac.TableEmployee: {Table: rbac.TableEmployee, CanAdd: true, CanEdit: true, CanDelete: false},
				},
			}

			Expect(access.Can(rbac.TableEmployee, rbac.ActionAdd)).To(BeTrue())
			Expect(access.Can(rbac.TableEmployee, rbac.ActionEdit)).To(BeTrue())
			Expect(access.Can(rbac.TableEmployee, rbac.ActionDelete)).To(BeFalse())

			// other tables are untouched by the employee row
			Expect(access.Can(rbac.TableJob, rbac.ActionDelete)).To(BeTrue())
		})

		It("scopes a full deny row to its own table", func() {
			access := rbac.Access{
				UserID: "user-2",
				Role:   rbac.RoleUser,
				Permissions: rbac.PermissionSet{
					rbac.TableJobHistory: {Table: rbac.TableJobHistory},
				},
			}

			Expect(access.Can(rbac.TableJobHistory, rbac.ActionAdd)).To(BeFalse())
			Expect(access.Can(rbac.TableJobHistory, rbac.ActionEdit)).To(BeFalse())
			Expect(access.Can(rbac.TableJobHistory, rbac.ActionDelete)).To(BeFalse())
			Expect(access.Can(rbac.TableEmployee, rbac.ActionAdd)).To(BeTrue())
		})
	})

	Describe("IsAdmin and IsBlocked", func() {
		It("reflects the role", func() {
			Expect(rbac.Access{Role: rbac.RoleAdmin}.IsAdmin()).To(BeTrue())
			Expect(rbac.Access{Role: rbac.RoleUser}.IsAdmin()).To(BeFalse())
			Expect(rbac.Access{Role: rbac.RoleBlocked}.IsBlocked()).To(BeTrue())
			Expect(rbac.Access{Role: rbac.RoleUser}.IsBlocked()).To(BeFalse())
		})
	})
})

var _ = Describe("ParseRole", func() {
	It("accepts the three known roles", func() {
		for _, s := range []string{"admin", "user", "blocked"} {
			role, err := rbac.ParseRole(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(role)).To(Equal(s))
		}
	})

	It("rejects unknown values", func() {
		_, err := rbac.ParseRole("superadmin")
		Expect(err).To(HaveOccurred())

		_, err = rbac.ParseRole("")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ParseTableKind", func() {
	It("round-trips every table name", func() {
		for _, table := range rbac.AllTables() {
			parsed, err := rbac.ParseTableKind(table.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(table))
		}
	})

	It("rejects unknown table names", func() {
		_, err := rbac.ParseTableKind("expenses")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("TablePermission", func() {
	It("maps each action to its flag", func() {
		perm := rbac.TablePermission{CanAdd: true, CanEdit: false, CanDelete: true}
		Expect(perm.Allows(rbac.ActionAdd)).To(BeTrue())
		Expect(perm.Allows(rbac.ActionEdit)).To(BeFalse())
		Expect(perm.Allows(rbac.ActionDelete)).To(BeTrue())
	})
})
