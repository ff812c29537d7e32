package records

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	hrDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/hr"
	"github.com/frahmantamala/hr-management/internal/rbac"
)

// Status is the lifecycle state of an HR record. Anything other than DELETED
// counts as active: RESTORED and EDITED rows behave exactly like ADDED ones.
type Status string

const (
	StatusAdded    Status = hrDatamodel.StatusAdded
	StatusEdited   Status = hrDatamodel.StatusEdited
	StatusDeleted  Status = hrDatamodel.StatusDeleted
	StatusRestored Status = hrDatamodel.StatusRestored
)

func (s Status) Active() bool {
	return s != StatusDeleted
}

// VisibleToRole reports whether a record with the given status appears in
// listings for the given role. Admins see everything, deleted rows included,
// so they can restore them.
func VisibleToRole(status Status, role rbac.Role) bool {
	if role == rbac.RoleAdmin {
		return true
	}
	return status.Active()
}

// CanOfferEdit reports whether the edit action is available to this identity
// for a record in the given state.
func CanOfferEdit(access rbac.Access, table rbac.TableKind, status Status) bool {
	return access.Can(table, rbac.ActionEdit) && status.Active()
}

// CanOfferDelete reports whether the delete action is available to this
// identity for a record in the given state.
func CanOfferDelete(access rbac.Access, table rbac.TableKind, status Status) bool {
	return access.Can(table, rbac.ActionDelete) && status.Active()
}

// GuardCreate rejects a create unless the identity holds the add grant.
func GuardCreate(access rbac.Access, table rbac.TableKind) error {
	if !access.Can(table, rbac.ActionAdd) {
		return internal.ErrPermissionDenied
	}
	return nil
}

// GuardEdit rejects an edit unless the identity holds the edit grant and the
// record is active. Deleted rows can only come back via restore.
func GuardEdit(access rbac.Access, table rbac.TableKind, status Status) error {
	if !access.Can(table, rbac.ActionEdit) {
		return internal.ErrPermissionDenied
	}
	if !status.Active() {
		return ErrRecordDeleted
	}
	return nil
}

// GuardDelete rejects a delete unless the identity holds the delete grant and
// the record is active. Referential checks are the caller's responsibility.
func GuardDelete(access rbac.Access, table rbac.TableKind, status Status) error {
	if !access.Can(table, rbac.ActionDelete) {
		return internal.ErrPermissionDenied
	}
	if !status.Active() {
		return ErrRecordDeleted
	}
	return nil
}

var (
	ErrRecordNotFound   = internal.NewNotFoundError("record not found", internal.ErrCodeRecordNotFound)
	ErrRecordDeleted    = internal.NewConflictError("record is deleted", internal.ErrCodeRecordDeleted)
	ErrRecordNotDeleted = internal.NewConflictError("record is not deleted", internal.ErrCodeRecordNotDeleted)
)

// DeletedRecord is one row of the admin deleted-records listing.
type DeletedRecord struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	TableName   string    `json:"table_name"`
	DeletedAt   time.Time `json:"deleted_at"`
}
