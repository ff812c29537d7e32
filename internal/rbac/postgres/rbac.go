package postgres

import (
	"time"

	rbacDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/rbac"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RBACRepository implements the rbac.Repository interface using GORM
type RBACRepository struct {
	db *gorm.DB
}

func NewRBACRepository(db *gorm.DB) rbac.Repository {
	return &RBACRepository{db: db}
}

// GetLatestRole returns the most recently updated role row for the user.
// When several rows share a timestamp the pick among them is unspecified.
func (r *RBACRepository) GetLatestRole(userID string) (rbac.Role, error) {
	var row rbacDatamodel.UserRole
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", rbac.ErrRoleNotFound
		}
		return "", err
	}
	return rbac.Role(row.Role), nil
}

// GetAllLatestRoles returns the current role per user across all identities.
func (r *RBACRepository) GetAllLatestRoles() ([]rbac.UserRoleView, error) {
	var rows []rbacDatamodel.UserRole
	err := r.db.
		Raw(`SELECT ur.user_id, ur.role, ur.updated_at
		     FROM user_roles ur
		     JOIN (SELECT user_id, MAX(updated_at) AS latest
		           FROM user_roles GROUP BY user_id) m
		       ON ur.user_id = m.user_id AND ur.updated_at = m.latest`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(rows))
	views := make([]rbac.UserRoleView, 0, len(rows))
	for _, row := range rows {
		if seen[row.UserID] {
			continue
		}
		seen[row.UserID] = true
		views = append(views, rbac.UserRoleView{
			UserID: row.UserID,
			Role:   rbac.Role(row.Role),
		})
	}
	return views, nil
}

func (r *RBACRepository) GetPermissions(userID string) ([]rbac.TablePermission, error) {
	var rows []rbacDatamodel.UserPermission
	err := r.db.Where("user_id = ?", userID).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	perms := make([]rbac.TablePermission, 0, len(rows))
	for _, row := range rows {
		table, err := rbac.ParseTableKind(row.TableName)
		if err != nil {
			// unknown table names in storage are skipped, not fatal
			continue
		}
		perms = append(perms, rbac.TablePermission{
			Table:     table,
			CanAdd:    row.CanAdd,
			CanEdit:   row.CanEdit,
			CanDelete: row.CanDelete,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return perms, nil
}

func (r *RBACRepository) GetAllPermissions() ([]rbac.UserPermissionView, error) {
	var rows []rbacDatamodel.UserPermission
	err := r.db.Order("user_id ASC, table_name ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]rbac.UserPermissionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, rbac.UserPermissionView{
			UserID:    row.UserID,
			TableName: row.TableName,
			CanAdd:    row.CanAdd,
			CanEdit:   row.CanEdit,
			CanDelete: row.CanDelete,
		})
	}
	return views, nil
}

func (r *RBACRepository) GetPermission(userID string, table rbac.TableKind) (*rbac.TablePermission, error) {
	var row rbacDatamodel.UserPermission
	err := r.db.Where("user_id = ? AND table_name = ?", userID, table.String()).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &rbac.TablePermission{
		Table:     table,
		CanAdd:    row.CanAdd,
		CanEdit:   row.CanEdit,
		CanDelete: row.CanDelete,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// UpsertRole appends a role row for the user. History is retained; resolution
// always reads the row with the newest updated_at.
func (r *RBACRepository) UpsertRole(userID string, role rbac.Role, updatedAt time.Time) error {
	row := rbacDatamodel.UserRole{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      string(role),
		UpdatedAt: updatedAt,
	}
	return r.db.Create(&row).Error
}

// UpsertPermission inserts or replaces the single (user_id, table_name) row.
func (r *RBACRepository) UpsertPermission(userID string, perm rbac.TablePermission) error {
	row := rbacDatamodel.UserPermission{
		ID:        uuid.NewString(),
		UserID:    userID,
		TableName: perm.Table.String(),
		CanAdd:    perm.CanAdd,
		CanEdit:   perm.CanEdit,
		CanDelete: perm.CanDelete,
		UpdatedAt: perm.UpdatedAt,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "table_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"can_add", "can_edit", "can_delete", "updated_at",
		}),
	}).Create(&row).Error
}
