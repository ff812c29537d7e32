package rbac

import (
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal"
)

// ErrRoleNotFound is returned by repositories when an identity has no role row.
var ErrRoleNotFound = errors.New("role not found")

// Repository defines the data access methods for roles and permissions.
type Repository interface {
	GetLatestRole(userID string) (Role, error)
	GetAllLatestRoles() ([]UserRoleView, error)
	GetPermissions(userID string) ([]TablePermission, error)
	GetAllPermissions() ([]UserPermissionView, error)
	GetPermission(userID string, table TableKind) (*TablePermission, error)
	UpsertRole(userID string, role Role, updatedAt time.Time) error
	UpsertPermission(userID string, perm TablePermission) error
}

// Service resolves and administers roles and per-table permission grants.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ResolveRole returns the identity's current role. No role row means a
// regular user. A fetch failure is logged and also falls back to user: the
// identity is neither promoted to admin nor locked out by a transient error.
func (s *Service) ResolveRole(userID string) Role {
	role, err := s.repo.GetLatestRole(userID)
	if err != nil {
		if !errors.Is(err, ErrRoleNotFound) {
			s.logger.Error("failed to fetch user role, treating as regular user", "error", err, "user_id", userID)
		}
		return RoleUser
	}
	if !role.Valid() {
		s.logger.Warn("unknown role value in store, treating as regular user", "role", role, "user_id", userID)
		return RoleUser
	}
	return role
}

// ResolvePermissions returns the identity's explicit permission rows.
// Missing rows are not synthesized; Access.Can supplies the default.
func (s *Service) ResolvePermissions(userID string) (PermissionSet, error) {
	perms, err := s.repo.GetPermissions(userID)
	if err != nil {
		return nil, err
	}

	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p.Table] = p
	}
	return set, nil
}

// AccessFor builds the per-request authorization snapshot for an identity.
// A permission fetch failure is logged and yields an empty exception list, so
// the identity keeps default grants rather than being locked out.
func (s *Service) AccessFor(userID string) Access {
	role := s.ResolveRole(userID)

	perms, err := s.ResolvePermissions(userID)
	if err != nil {
		s.logger.Error("failed to fetch user permissions", "error", err, "user_id", userID)
		perms = PermissionSet{}
	}

	return Access{
		UserID:      userID,
		Role:        role,
		Permissions: perms,
	}
}

// ListUserRoles returns the current role of every identity that has one.
// Admin only; re-validated here regardless of route gating.
func (s *Service) ListUserRoles(caller Access) ([]UserRoleView, error) {
	if !caller.IsAdmin() {
		s.logger.Warn("role listing denied: caller is not admin", "caller_id", caller.UserID)
		return nil, internal.ErrAdminRequired
	}
	return s.repo.GetAllLatestRoles()
}

// ListUserPermissions returns every explicit permission row across all users.
func (s *Service) ListUserPermissions(caller Access) ([]UserPermissionView, error) {
	if !caller.IsAdmin() {
		s.logger.Warn("permission listing denied: caller is not admin", "caller_id", caller.UserID)
		return nil, internal.ErrAdminRequired
	}
	return s.repo.GetAllPermissions()
}

// UpdateRole upserts the role row for userID with a fresh timestamp.
func (s *Service) UpdateRole(caller Access, userID string, newRole Role) error {
	if !caller.IsAdmin() {
		s.logger.Warn("role update denied: caller is not admin", "caller_id", caller.UserID, "target_id", userID)
		return internal.ErrAdminRequired
	}
	if !newRole.Valid() {
		return internal.NewValidationError("role must be one of admin, user, blocked", internal.ErrCodeInvalidRole)
	}

	if err := s.repo.UpsertRole(userID, newRole, time.Now()); err != nil {
		s.logger.Error("failed to update user role", "error", err, "target_id", userID, "role", newRole)
		return err
	}

	s.logger.Info("user role updated", "caller_id", caller.UserID, "target_id", userID, "role", newRole)
	return nil
}

// UpdatePermission merges the supplied partial grant into the existing row
// for (userID, table), creating one with unset fields defaulting to true.
func (s *Service) UpdatePermission(caller Access, userID string, table TableKind, dto UpdatePermissionDTO) error {
	if !caller.IsAdmin() {
		s.logger.Warn("permission update denied: caller is not admin", "caller_id", caller.UserID, "target_id", userID)
		return internal.ErrAdminRequired
	}
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetPermission(userID, table)
	if err != nil {
		s.logger.Error("failed to fetch existing permission", "error", err, "target_id", userID, "table", table)
		return err
	}

	merged := TablePermission{
		Table:     table,
		CanAdd:    true,
		CanEdit:   true,
		CanDelete: true,
	}
	if existing != nil {
		merged = *existing
	}
	if dto.CanAdd != nil {
		merged.CanAdd = *dto.CanAdd
	}
	if dto.CanEdit != nil {
		merged.CanEdit = *dto.CanEdit
	}
	if dto.CanDelete != nil {
		merged.CanDelete = *dto.CanDelete
	}
	merged.UpdatedAt = time.Now()

	if err := s.repo.UpsertPermission(userID, merged); err != nil {
		s.logger.Error("failed to update user permission", "error", err, "target_id", userID, "table", table)
		return err
	}

	s.logger.Info("user permission updated",
		"caller_id", caller.UserID,
		"target_id", userID,
		"table", table.String(),
		"can_add", merged.CanAdd,
		"can_edit", merged.CanEdit,
		"can_delete", merged.CanDelete)
	return nil
}
