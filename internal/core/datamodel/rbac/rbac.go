package rbac

import "time"

// UserRole keeps history: a new row may be inserted per change, and only the
// most recent row by updated_at is authoritative.
type UserRole struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;index"`
	Role      string    `gorm:"column:role;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// UserPermission holds at most one row per (user_id, table_name) pair.
// Absence of a row means default-allow for that table.
type UserPermission struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:idx_user_table"`
	TableName string    `gorm:"column:table_name;not null;uniqueIndex:idx_user_table"`
	CanAdd    bool      `gorm:"column:can_add;default:true"`
	CanEdit   bool      `gorm:"column:can_edit;default:true"`
	CanDelete bool      `gorm:"column:can_delete;default:true"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}
