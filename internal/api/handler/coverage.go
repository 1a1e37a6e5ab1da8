package handler

import (
	"net/http"

	"github.com/tollgrid/tollgrid/internal/api/models"
	"github.com/tollgrid/tollgrid/internal/api/response"
	"github.com/tollgrid/tollgrid/internal/pipeline"
)

// CoverageHandler handles the temporal completeness endpoint.
type CoverageHandler struct {
	service *pipeline.Service
}

// NewCoverageHandler creates a new CoverageHandler.
func NewCoverageHandler(service *pipeline.Service) *CoverageHandler {
	return &CoverageHandler{service: service}
}

// Report handles GET /v1/coverage - per-pair completeness results.
func (h *CoverageHandler) Report(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.service.Coverage(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.CoverageReport{Pairs: pairs})
}
