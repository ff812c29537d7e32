package report

import (
	"net/http"

	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	Summary() (*Summary, error)
	DepartmentsChart() ([]DepartmentHeadcount, error)
	JobsChart() ([]JobHeadcount, error)
	HeadcountChart() ([]HireYearCount, error)
	SalaryTrends() ([]SalaryTrendPoint, error)
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

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary()
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) GetDepartmentsChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.Service.DepartmentsChart()
	if err != nil {
		h.Logger.Error("GetDepartmentsChart: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"departments": chart})
}

func (h *Handler) GetJobsChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.Service.JobsChart()
	if err != nil {
		h.Logger.Error("GetJobsChart: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"jobs": chart})
}

func (h *Handler) GetHeadcountChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.Service.HeadcountChart()
	if err != nil {
		h.Logger.Error("GetHeadcountChart: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"headcount": chart})
}

func (h *Handler) GetSalaryTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.Service.SalaryTrends()
	if err != nil {
		h.Logger.Error("GetSalaryTrends: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"salary_trends": trends})
}
