package http

import (
	"net/http"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/dashboard"
	"github.com/cmlabs-hris/workforce-analytics/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/validator"
)

type DashboardHandler interface {
	// GetLeaves returns the composite leave dashboard for a year
	GetLeaves(w http.ResponseWriter, r *http.Request)
	// GetTimeManagement returns attendance analytics for a month
	GetTimeManagement(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetLeaves handles GET /dashboards/leaves
func (h *dashboardHandlerImpl) GetLeaves(w http.ResponseWriter, r *http.Request) {
	year, err := validator.OptionalInt("year", r.URL.Query().Get("year"), 0, 2000, 2100) // default: current year
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetLeavesDashboard(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTimeManagement handles GET /dashboards/time-management
func (h *dashboardHandlerImpl) GetTimeManagement(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month") // format: YYYY-MM, default: current month

	result, err := h.dashboardService.GetTimeManagementDashboard(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
