package jobhistory

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/rbac"
	"github.com/frahmantamala/hr-management/internal/records"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListByEmployee(access rbac.Access, empno string) ([]View, error)
	Get(access rbac.Access, key records.HistoryKey) (*View, error)
	Create(access rbac.Access, dto CreateJobHistoryDTO) (*JobHistory, error)
	Update(access rbac.Access, key records.HistoryKey, dto UpdateJobHistoryDTO) (*JobHistory, error)
	Delete(access rbac.Access, key records.HistoryKey) error
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

func (h *Handler) ListEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	empno := chi.URLParam(r, "empno")
	views, err := h.Service.ListByEmployee(user.Access, empno)
	if err != nil {
		h.Logger.Error("ListEmployeeHistory: service error", "error", err, "empno", empno)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"jobhistory": views})
}

func (h *Handler) GetJobHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	key, err := h.keyFromRequest(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	view, err := h.Service.Get(user.Access, key)
	if err != nil {
		h.Logger.Error("GetJobHistory: service error", "error", err, "id", key.String())
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) CreateJobHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateJobHistoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	jh, err := h.Service.Create(user.Access, dto)
	if err != nil {
		h.Logger.Error("CreateJobHistory: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, jh)
}

func (h *Handler) UpdateJobHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	key, err := h.keyFromRequest(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateJobHistoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	jh, err := h.Service.Update(user.Access, key, dto)
	if err != nil {
		h.Logger.Error("UpdateJobHistory: service error", "error", err, "id", key.String())
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, jh)
}

func (h *Handler) DeleteJobHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	key, err := h.keyFromRequest(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Delete(user.Access, key); err != nil {
		h.Logger.Error("DeleteJobHistory: service error", "error", err, "id", key.String())
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) keyFromRequest(r *http.Request) (records.HistoryKey, error) {
	key, err := records.ParseHistoryKey(chi.URLParam(r, "id"))
	if err != nil {
		return records.HistoryKey{}, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	return key, nil
}
