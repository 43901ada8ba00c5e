package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/profilerisk"
	"github.com/cmlabs-hris/workforce-analytics/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ProfileRiskHandler interface {
	AnalyzeChangeRequest(w http.ResponseWriter, r *http.Request)
	GetRetentionRisk(w http.ResponseWriter, r *http.Request)
	GetDeactivationImpact(w http.ResponseWriter, r *http.Request)
	GetProfileHealth(w http.ResponseWriter, r *http.Request)
}

type profileRiskHandlerImpl struct {
	profileRiskService profilerisk.ProfileRiskService
}

func NewProfileRiskHandler(profileRiskService profilerisk.ProfileRiskService) ProfileRiskHandler {
	return &profileRiskHandlerImpl{profileRiskService: profileRiskService}
}

// AnalyzeChangeRequest handles POST /profile-risk/change-requests/analyze
func (h *profileRiskHandlerImpl) AnalyzeChangeRequest(w http.ResponseWriter, r *http.Request) {
	var req profilerisk.ChangeRequestRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if len(req.Changes) == 0 {
		response.HandleError(w, validator.ValidationErrors{{Field: "changes", Message: "at least one changed field is required"}})
		return
	}

	response.Success(w, h.profileRiskService.AnalyzeChangeRequestRisk(req.Changes, req.Justification))
}

// GetRetentionRisk handles GET /profile-risk/employees/{employeeID}/retention-risk
func (h *profileRiskHandlerImpl) GetRetentionRisk(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileRiskService.CalculateRetentionRisk(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetDeactivationImpact handles GET /profile-risk/employees/{employeeID}/deactivation-impact
func (h *profileRiskHandlerImpl) GetDeactivationImpact(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileRiskService.AnalyzeDeactivationImpact(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetProfileHealth handles GET /profile-risk/employees/{employeeID}/health
func (h *profileRiskHandlerImpl) GetProfileHealth(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileRiskService.GetProfileHealth(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
