package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payrollanalytics"
	"github.com/cmlabs-hris/workforce-analytics/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/pdf"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollAnalyticsHandler interface {
	GetStory(w http.ResponseWriter, r *http.Request)
	GetStoryPDF(w http.ResponseWriter, r *http.Request)
	GetGhostEmployees(w http.ResponseWriter, r *http.Request)
	GetForecast(w http.ResponseWriter, r *http.Request)
}

type payrollAnalyticsHandlerImpl struct {
	payrollAnalyticsService payrollanalytics.PayrollAnalyticsService
	now                     func() time.Time
}

func NewPayrollAnalyticsHandler(payrollAnalyticsService payrollanalytics.PayrollAnalyticsService) PayrollAnalyticsHandler {
	return &payrollAnalyticsHandlerImpl{payrollAnalyticsService: payrollAnalyticsService, now: time.Now}
}

func entityParam(r *http.Request) *string {
	entityID := r.URL.Query().Get("entity_id")
	if validator.IsEmpty(entityID) {
		return nil
	}
	return &entityID
}

// GetStory handles GET /payroll-analytics/story
func (h *payrollAnalyticsHandlerImpl) GetStory(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollAnalyticsService.GetPayrollStory(r.Context(), entityParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetStoryPDF handles GET /payroll-analytics/story/pdf
func (h *payrollAnalyticsHandlerImpl) GetStoryPDF(w http.ResponseWriter, r *http.Request) {
	story, err := h.payrollAnalyticsService.GetPayrollStory(r.Context(), entityParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	forecast, err := h.payrollAnalyticsService.GetForecast(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	now := h.now()
	body, err := pdf.RenderPayrollReport(story, forecast, now)
	if err != nil {
		response.HandleError(w, fmt.Errorf("failed to render payroll report: %w", err))
		return
	}

	response.PDF(w, "payroll-report", now.UTC().Format("20060102"), body)
}

// GetGhostEmployees handles GET /payroll-analytics/runs/{runID}/ghost-employees
func (h *payrollAnalyticsHandlerImpl) GetGhostEmployees(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	result, err := h.payrollAnalyticsService.DetectGhostEmployees(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetForecast handles GET /payroll-analytics/forecast
func (h *payrollAnalyticsHandlerImpl) GetForecast(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollAnalyticsService.GetForecast(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
