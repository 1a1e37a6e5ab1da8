package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tollgrid/tollgrid/internal/api/models"
	"github.com/tollgrid/tollgrid/internal/api/response"
	"github.com/tollgrid/tollgrid/internal/dataset"
)

// AdminHandler handles operator-only dataset administration.
type AdminHandler struct {
	source   *dataset.Source
	importer dataset.Importer
	repo     dataset.Repository
	logger   zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(source *dataset.Source, importer dataset.Importer, repo dataset.Repository, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		source:   source,
		importer: importer,
		repo:     repo,
		logger:   logger,
	}
}

// ReloadDatasets handles POST /v1/admin/datasets/reload - re-fetch
// all raw datasets from the configured source.
func (h *AdminHandler) ReloadDatasets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	operator := GetOperator(ctx)

	if err := h.source.Sync(ctx, h.importer); err != nil {
		h.logger.Error().Err(err).Str("operator", operator).Msg("dataset reload failed")
		response.ServiceUnavailable(w, r, "dataset source unavailable")
		return
	}

	segments, err := h.repo.ListSegments(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	counts, err := h.repo.ListVehicleCounts(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	observations, err := h.repo.ListObservations(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.logger.Info().
		Str("operator", operator).
		Int("segments", len(segments)).
		Int("vehicle_counts", len(counts)).
		Int("observations", len(observations)).
		Msg("datasets reloaded")

	response.JSON(w, r, http.StatusOK, models.DatasetReloadResponse{
		Segments:      len(segments),
		VehicleCounts: len(counts),
		Observations:  len(observations),
		ReloadedAt:    models.Timestamp(time.Now()),
	})
}
