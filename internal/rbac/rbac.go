package rbac

import (
	"fmt"
	"time"
)

// Role is the coarse authorization tier attached to an identity.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleBlocked Role = "blocked"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleBlocked:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// TableKind identifies one of the four HR tables. Using a closed type instead
// of raw table-name strings keeps dispatch exhaustive.
type TableKind int

const (
	TableEmployee TableKind = iota
	TableJob
	TableDepartment
	TableJobHistory
)

var tableNames = map[TableKind]string{
	TableEmployee:   "employee",
	TableJob:        "job",
	TableDepartment: "department",
	TableJobHistory: "jobhistory",
}

// AllTables lists every TableKind in a stable order.
func AllTables() []TableKind {
	return []TableKind{TableEmployee, TableJob, TableDepartment, TableJobHistory}
}

func (t TableKind) String() string {
	if name, ok := tableNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TableKind(%d)", int(t))
}

func ParseTableKind(s string) (TableKind, error) {
	for kind, name := range tableNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("invalid table name %q", s)
}

// Action is a mutation capability on a table.
type Action int

const (
	ActionAdd Action = iota
	ActionEdit
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

func ParseAction(s string) (Action, error) {
	switch s {
	case "add":
		return ActionAdd, nil
	case "edit":
		return ActionEdit, nil
	case "delete":
		return ActionDelete, nil
	}
	return 0, fmt.Errorf("invalid action %q", s)
}

// TablePermission is the per-table capability override for one identity.
type TablePermission struct {
	Table     TableKind `json:"table_name"`
	CanAdd    bool      `json:"can_add"`
	CanEdit   bool      `json:"can_edit"`
	CanDelete bool      `json:"can_delete"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p TablePermission) Allows(action Action) bool {
	switch action {
	case ActionAdd:
		return p.CanAdd
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	}
	return false
}

// PermissionSet holds the explicit permission rows for one identity, keyed by
// table. It is an exception list: tables with no entry are fully allowed.
type PermissionSet map[TableKind]TablePermission

// Access is the per-request authorization snapshot for one identity. It is
// resolved once when the request is authenticated and carried in context, so
// role and grants stay consistent for the request's duration.
type Access struct {
	UserID      string
	Role        Role
	Permissions PermissionSet
}

func (a Access) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Access) IsBlocked() bool {
	return a.Role == RoleBlocked
}

// Can reports whether this identity may perform action on table.
// Admins may do anything, blocked users nothing. For everyone else a missing
// permission row means allow; an explicit row decides per action.
func (a Access) Can(table TableKind, action Action) bool {
	if a.IsAdmin() {
		return true
	}
	if a.IsBlocked() {
		return false
	}
	perm, ok := a.Permissions[table]
	if !ok {
		return true
	}
	return perm.Allows(action)
}
