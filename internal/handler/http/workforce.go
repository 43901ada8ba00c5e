package http

import (
	"net/http"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/workforce"
	"github.com/cmlabs-hris/workforce-analytics/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/validator"
)

const (
	defaultWindowMonths = 12
	maxWindowMonths     = 36
)

type WorkforceHandler interface {
	GetHeadcountTrends(w http.ResponseWriter, r *http.Request)
	GetTurnover(w http.ResponseWriter, r *http.Request)
	GetDemographics(w http.ResponseWriter, r *http.Request)
	GetAttritionForecast(w http.ResponseWriter, r *http.Request)
	GetHighRiskEmployees(w http.ResponseWriter, r *http.Request)
}

type workforceHandlerImpl struct {
	workforceService workforce.WorkforceService
}

func NewWorkforceHandler(workforceService workforce.WorkforceService) WorkforceHandler {
	return &workforceHandlerImpl{workforceService: workforceService}
}

// GetHeadcountTrends handles GET /workforce-analytics/headcount-trends?months=12
func (h *workforceHandlerImpl) GetHeadcountTrends(w http.ResponseWriter, r *http.Request) {
	months, err := validator.OptionalInt("months", r.URL.Query().Get("months"),
		defaultWindowMonths, 1, maxWindowMonths)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workforceService.GetHeadcountTrends(r.Context(), months)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetTurnover handles GET /workforce-analytics/turnover?period_months=12
func (h *workforceHandlerImpl) GetTurnover(w http.ResponseWriter, r *http.Request) {
	period, err := validator.OptionalInt("period_months", r.URL.Query().Get("period_months"),
		defaultWindowMonths, 1, maxWindowMonths)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workforceService.GetTurnoverMetrics(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetDemographics handles GET /workforce-analytics/demographics
func (h *workforceHandlerImpl) GetDemographics(w http.ResponseWriter, r *http.Request) {
	result, err := h.workforceService.GetDemographicsBreakdown(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetAttritionForecast handles GET /workforce-analytics/attrition-forecast
func (h *workforceHandlerImpl) GetAttritionForecast(w http.ResponseWriter, r *http.Request) {
	result, err := h.workforceService.GetAttritionForecast(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetHighRiskEmployees handles GET /workforce-analytics/high-risk-employees
func (h *workforceHandlerImpl) GetHighRiskEmployees(w http.ResponseWriter, r *http.Request) {
	result, err := h.workforceService.GetHighRiskEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
