package rbac

import "errors"

// UpdateRoleDTO is the payload for changing a user's role.
type UpdateRoleDTO struct {
	Role string `json:"role"`
}

func (d UpdateRoleDTO) Validate() error {
	if d.Role == "" {
		return errors.New("role is required")
	}
	if _, err := ParseRole(d.Role); err != nil {
		return err
	}
	return nil
}

// UpdatePermissionDTO carries a partial permission update: nil fields keep
// their current value, or default to true when no row exists yet.
type UpdatePermissionDTO struct {
	CanAdd    *bool `json:"can_add,omitempty"`
	CanEdit   *bool `json:"can_edit,omitempty"`
	CanDelete *bool `json:"can_delete,omitempty"`
}

func (d UpdatePermissionDTO) Validate() error {
	if d.CanAdd == nil && d.CanEdit == nil && d.CanDelete == nil {
		return errors.New("at least one of can_add, can_edit, can_delete is required")
	}
	return nil
}

// UserRoleView is one row of the admin role listing.
type UserRoleView struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// UserPermissionView is one row of the admin permission listing.
type UserPermissionView struct {
	UserID    string `json:"user_id"`
	TableName string `json:"table_name"`
	CanAdd    bool   `json:"can_add"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
}
