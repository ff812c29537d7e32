package rbac

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListUserRoles(caller Access) ([]UserRoleView, error)
	ListUserPermissions(caller Access) ([]UserPermissionView, error)
	UpdateRole(caller Access, userID string, newRole Role) error
	UpdatePermission(caller Access, userID string, table TableKind, dto UpdatePermissionDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ListUserRoles handles GET /admin/user-roles
func (h *Handler) ListUserRoles(w http.ResponseWriter, r *http.Request) {
	access, ok := AccessFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	roles, err := h.Service.ListUserRoles(access)
	if err != nil {
		h.Logger.Error("ListUserRoles: service error", "error", err, "caller_id", access.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"roles": roles})
}

// ListUserPermissions handles GET /admin/user-permissions
func (h *Handler) ListUserPermissions(w http.ResponseWriter, r *http.Request) {
	access, ok := AccessFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	perms, err := h.Service.ListUserPermissions(access)
	if err != nil {
		h.Logger.Error("ListUserPermissions: service error", "error", err, "caller_id", access.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"permissions": perms})
}

// UpdateUserRole handles PUT /admin/users/{id}/role
func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	access, ok := AccessFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		h.WriteError(w, http.StatusBadRequest, "user id is required")
		return
	}

	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	role, _ := ParseRole(dto.Role)
	if err := h.Service.UpdateRole(access, userID, role); err != nil {
		h.Logger.Error("UpdateUserRole: service error", "error", err, "target_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"user_id": userID,
		"role":    dto.Role,
	})
}

// UpdateUserPermission handles PUT /admin/users/{id}/permissions/{table}
func (h *Handler) UpdateUserPermission(w http.ResponseWriter, r *http.Request) {
	access, ok := AccessFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID := chi.URLParam(r, "id")
	tableName := chi.URLParam(r, "table")

	table, err := ParseTableKind(tableName)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var dto UpdatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdatePermission(access, userID, table, dto); err != nil {
		h.Logger.Error("UpdateUserPermission: service error", "error", err, "target_id", userID, "table", tableName)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"user_id":    userID,
		"table_name": tableName,
	})
}
