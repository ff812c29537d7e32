package department

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
	Get(access rbac.Access, deptcode string) (*View, error)
	Create(access rbac.Access, dto CreateDepartmentDTO) (*Department, error)
	Update(access rbac.Access, deptcode string, dto UpdateDepartmentDTO) (*Department, error)
	Delete(access rbac.Access, deptcode string) error
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

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	views, err := h.Service.List(user.Access)
	if err != nil {
		h.Logger.Error("ListDepartments: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"departments": views})
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	deptcode := chi.URLParam(r, "deptcode")
	view, err := h.Service.Get(user.Access, deptcode)
	if err != nil {
		h.Logger.Error("GetDepartment: service error", "error", err, "deptcode", deptcode)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.Create(user.Access, dto)
	if err != nil {
		h.Logger.Error("CreateDepartment: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	deptcode := chi.URLParam(r, "deptcode")

	var dto UpdateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.Update(user.Access, deptcode, dto)
	if err != nil {
		h.Logger.Error("UpdateDepartment: service error", "error", err, "deptcode", deptcode)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	deptcode := chi.URLParam(r, "deptcode")

	if err := h.Service.Delete(user.Access, deptcode); err != nil {
		h.Logger.Error("DeleteDepartment: service error", "error", err, "deptcode", deptcode)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
