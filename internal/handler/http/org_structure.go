package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/orgstructure"
	"github.com/cmlabs-hris/workforce-analytics/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type OrgStructureHandler interface {
	GetStructuralHealth(w http.ResponseWriter, r *http.Request)
	GetDepartmentAnalytics(w http.ResponseWriter, r *http.Request)
	GetPositionRisk(w http.ResponseWriter, r *http.Request)
	SimulateChange(w http.ResponseWriter, r *http.Request)
	GetCostCenters(w http.ResponseWriter, r *http.Request)
	GetSpanOfControl(w http.ResponseWriter, r *http.Request)
	GetVacancyForecast(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)

	// Department scoped
	GetDepartmentSummary(w http.ResponseWriter, r *http.Request)
	GetDepartmentPositionRisk(w http.ResponseWriter, r *http.Request)
	GetDepartmentSpanOfControl(w http.ResponseWriter, r *http.Request)
	GetDepartmentVacancyForecast(w http.ResponseWriter, r *http.Request)
}

type orgStructureHandlerImpl struct {
	orgStructureService orgstructure.OrgStructureService
}

func NewOrgStructureHandler(orgStructureService orgstructure.OrgStructureService) OrgStructureHandler {
	return &orgStructureHandlerImpl{orgStructureService: orgStructureService}
}

// GetStructuralHealth handles GET /org-structure-analytics/health
func (h *orgStructureHandlerImpl) GetStructuralHealth(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetStructuralHealth(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetDepartmentAnalytics handles GET /org-structure-analytics/departments
func (h *orgStructureHandlerImpl) GetDepartmentAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetDepartmentAnalytics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetPositionRisk handles GET /org-structure-analytics/position-risk
func (h *orgStructureHandlerImpl) GetPositionRisk(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetPositionRiskAssessment(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// SimulateChange handles POST /org-structure-analytics/simulate
func (h *orgStructureHandlerImpl) SimulateChange(w http.ResponseWriter, r *http.Request) {
	var req orgstructure.SimulateChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(string(req.ActionType)) {
		errs = append(errs, validator.ValidationError{Field: "action_type", Message: "action_type is required"})
	}
	if validator.IsEmpty(req.TargetID) {
		errs = append(errs, validator.ValidationError{Field: "target_id", Message: "target_id is required"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.orgStructureService.SimulateChangeImpact(r.Context(), req.ActionType, req.TargetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetCostCenters handles GET /org-structure-analytics/cost-centers
func (h *orgStructureHandlerImpl) GetCostCenters(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetCostCenterSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetSpanOfControl handles GET /org-structure-analytics/span-of-control
func (h *orgStructureHandlerImpl) GetSpanOfControl(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetSpanOfControl(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetVacancyForecast handles GET /org-structure-analytics/vacancy-forecast
func (h *orgStructureHandlerImpl) GetVacancyForecast(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetVacancyForecast(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetSummary handles GET /org-structure-analytics/summary
func (h *orgStructureHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetOrgSummaryStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ========== DEPARTMENT SCOPED ==========

// GetDepartmentSummary handles GET /org-structure-analytics/departments/{departmentID}/summary
func (h *orgStructureHandlerImpl) GetDepartmentSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetDepartmentSummary(r.Context(), chi.URLParam(r, "departmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetDepartmentPositionRisk handles GET /org-structure-analytics/departments/{departmentID}/position-risk
func (h *orgStructureHandlerImpl) GetDepartmentPositionRisk(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetDepartmentPositionRisk(r.Context(), chi.URLParam(r, "departmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetDepartmentSpanOfControl handles GET /org-structure-analytics/departments/{departmentID}/span-of-control
func (h *orgStructureHandlerImpl) GetDepartmentSpanOfControl(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetDepartmentSpanOfControl(r.Context(), chi.URLParam(r, "departmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetDepartmentVacancyForecast handles GET /org-structure-analytics/departments/{departmentID}/vacancy-forecast
func (h *orgStructureHandlerImpl) GetDepartmentVacancyForecast(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgStructureService.GetDepartmentVacancyForecast(r.Context(), chi.URLParam(r, "departmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
