package employee

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(access rbac.Access) ([]View, error)
	Search(access rbac.Access, query string) ([]View, error)
	Get(access rbac.Access, empno string) (*View, error)
	Create(access rbac.Access, dto CreateEmployeeDTO) (*Employee, error)
	Update(access rbac.Access, empno string, dto UpdateEmployeeDTO) (*Employee, error)
	Delete(access rbac.Access, empno string) error
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

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		views, err := h.Service.Search(user.Access, q)
		if err != nil {
			h.Logger.Error("ListEmployees: search error", "error", err, "query", q)
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": views})
		return
	}

	views, err := h.Service.List(user.Access)
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": views})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	empno := chi.URLParam(r, "empno")
	view, err := h.Service.Get(user.Access, empno)
	if err != nil {
		h.Logger.Error("GetEmployee: service error", "error", err, "empno", empno)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Create(user.Access, dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	empno := chi.URLParam(r, "empno")

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Update(user.Access, empno, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", err, "empno", empno)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	empno := chi.URLParam(r, "empno")

	if err := h.Service.Delete(user.Access, empno); err != nil {
		h.Logger.Error("DeleteEmployee: service error", "error", err, "empno", empno)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
