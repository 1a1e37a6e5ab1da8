package handler

import (
	"net/http"

	"github.com/tollgrid/tollgrid/internal/api/models"
	"github.com/tollgrid/tollgrid/internal/api/response"
	"github.com/tollgrid/tollgrid/internal/pipeline"
)

// AnalysisHandler handles vehicle count analysis endpoints.
type AnalysisHandler struct {
	service *pipeline.Service
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(service *pipeline.Service) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// CarMatrix handles GET /v1/analysis/car-matrix - the pivoted car
// count matrix with its conditionally scaled variant.
func (h *AnalysisHandler) CarMatrix(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.service.CarMatrix(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	scaled, err := h.service.ScaledCarMatrix(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.CarMatrixResponse{
		Matrix: models.NewDistanceMatrix(matrix),
		Scaled: models.NewDistanceMatrix(scaled),
	})
}

// CarTypes handles GET /v1/analysis/car-types - low/medium/high
// bucket counts.
func (h *AnalysisHandler) CarTypes(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.service.CarTypeCounts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.CarTypeCounts{Buckets: buckets})
}

// BusOutliers handles GET /v1/analysis/bus-outliers - record indexes
// with bus counts above twice the mean.
func (h *AnalysisHandler) BusOutliers(w http.ResponseWriter, r *http.Request) {
	indexes, err := h.service.BusOutliers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.BusOutliers{Indexes: indexes})
}

// TruckRoutes handles GET /v1/analysis/truck-routes - routes with a
// high average truck count.
func (h *AnalysisHandler) TruckRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.service.HighTruckRoutes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.TruckRoutes{Routes: routes})
}
