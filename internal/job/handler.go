package job

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
	Get(access rbac.Access, jobcode string) (*View, error)
	Create(access rbac.Access, dto CreateJobDTO) (*Job, error)
	Update(access rbac.Access, jobcode string, dto UpdateJobDTO) (*Job, error)
	Delete(access rbac.Access, jobcode string) error
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

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	views, err := h.Service.List(user.Access)
	if err != nil {
		h.Logger.Error("ListJobs: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"jobs": views})
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobcode := chi.URLParam(r, "jobcode")
	view, err := h.Service.Get(user.Access, jobcode)
	if err != nil {
		h.Logger.Error("GetJob: service error", "error", err, "jobcode", jobcode)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	j, err := h.Service.Create(user.Access, dto)
	if err != nil {
		h.Logger.Error("CreateJob: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, j)
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobcode := chi.URLParam(r, "jobcode")

	var dto UpdateJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	j, err := h.Service.Update(user.Access, jobcode, dto)
	if err != nil {
		h.Logger.Error("UpdateJob: service error", "error", err, "jobcode", jobcode)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, j)
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobcode := chi.URLParam(r, "jobcode")

	if err := h.Service.Delete(user.Access, jobcode); err != nil {
		h.Logger.Error("DeleteJob: service error", "error", err, "jobcode", jobcode)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
