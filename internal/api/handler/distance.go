package handler

import (
	"net/http"

	"github.com/tollgrid/tollgrid/internal/api/models"
	"github.com/tollgrid/tollgrid/internal/api/response"
	"github.com/tollgrid/tollgrid/internal/pipeline"
)

// DistanceHandler handles distance matrix endpoints.
type DistanceHandler struct {
	service *pipeline.Service
}

// NewDistanceHandler creates a new DistanceHandler.
func NewDistanceHandler(service *pipeline.Service) *DistanceHandler {
	return &DistanceHandler{service: service}
}

// Matrix handles GET /v1/distance/matrix - the symmetric distance matrix.
func (h *DistanceHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.service.DistanceMatrix(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewDistanceMatrix(matrix))
}

// Unrolled handles GET /v1/distance/unrolled - long-form pair records.
func (h *DistanceHandler) Unrolled(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.service.UnrolledDistances(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.UnrolledDistances{Pairs: pairs})
}

// Nearby handles GET /v1/distance/nearby?reference=ID - identifiers
// within the average-distance threshold.
func (h *DistanceHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		response.BadRequest(w, r, "reference query parameter is required", []models.FieldError{
			{Field: "reference", Message: "required", Code: "REQUIRED"},
		})
		return
	}

	ids, err := h.service.NearbyIDs(r.Context(), reference)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NearbyIDs{Reference: reference, IDs: ids})
}
