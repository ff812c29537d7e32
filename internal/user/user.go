package user

import (
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/jobhistory"
	"github.com/frahmantamala/hr-management/internal/rbac"
)

// Profile is the signed-in identity as the dashboard sees it: who they are
// plus the grants that drive which controls the UI renders.
type Profile struct {
	ID          string                `json:"id"`
	Email       string                `json:"email"`
	FullName    string                `json:"full_name"`
	Role        rbac.Role             `json:"role"`
	Permissions []TablePermissionView `json:"permissions"`
}

// TablePermissionView is one table's effective grants for the profile owner,
// with the default-allow rule already applied.
type TablePermissionView struct {
	Table     string `json:"table_name"`
	CanAdd    bool   `json:"can_add"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
}

// EmployeeProfile pairs the caller's personnel record with its active
// assignment history.
type EmployeeProfile struct {
	Employee *employee.Employee `json:"employee"`
	History  []jobhistory.View  `json:"jobhistory"`
}
