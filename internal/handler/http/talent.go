package http

import (
	"net/http"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/talent"
	"github.com/cmlabs-hris/workforce-analytics/internal/handler/http/response"
)

type TalentHandler interface {
	GetRaterBias(w http.ResponseWriter, r *http.Request)
	GetNineBox(w http.ResponseWriter, r *http.Request)
}

type talentHandlerImpl struct {
	talentService talent.TalentService
}

func NewTalentHandler(talentService talent.TalentService) TalentHandler {
	return &talentHandlerImpl{talentService: talentService}
}

// GetRaterBias handles GET /talent-analytics/rater-bias
func (h *talentHandlerImpl) GetRaterBias(w http.ResponseWriter, r *http.Request) {
	result, err := h.talentService.GetRaterBias(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetNineBox handles GET /talent-analytics/nine-box
func (h *talentHandlerImpl) GetNineBox(w http.ResponseWriter, r *http.Request) {
	result, err := h.talentService.GetNineBox(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
