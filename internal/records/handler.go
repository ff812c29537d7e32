package records

import (
	"net/http"

	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListDeleted(caller rbac.Access, table rbac.TableKind) ([]DeletedRecord, error)
	Restore(caller rbac.Access, table rbac.TableKind, recordID string) error
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

// ListDeleted handles GET /admin/deleted/{table}
func (h *Handler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	access, ok := rbac.AccessFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	table, err := rbac.ParseTableKind(chi.URLParam(r, "table"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.Service.ListDeleted(access, table)
	if err != nil {
		h.Logger.Error("ListDeleted: service error", "error", err, "table", table.String())
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"table_name": table.String(),
		"records":    deleted,
	})
}

// Restore handles POST /admin/restore/{table}/{id}
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	access, ok := rbac.AccessFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	table, err := rbac.ParseTableKind(chi.URLParam(r, "table"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		h.WriteError(w, http.StatusBadRequest, "record id is required")
		return
	}

	if err := h.Service.Restore(access, table, recordID); err != nil {
		h.Logger.Error("Restore: service error", "error", err, "table", table.String(), "record_id", recordID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"table_name": table.String(),
		"record_id":  recordID,
		"status":     string(StatusRestored),
	})
}
