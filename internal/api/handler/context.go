package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/tollgrid/tollgrid/internal/api/middleware"
	"github.com/tollgrid/tollgrid/internal/api/response"
	"github.com/tollgrid/tollgrid/internal/dataset"
	"github.com/tollgrid/tollgrid/internal/distance"
)

// GetOperator retrieves the authenticated operator from the context.
// This is a convenience wrapper around middleware.GetOperator.
func GetOperator(ctx context.Context) string {
	return middleware.GetOperator(ctx)
}

// writeServiceError maps pipeline errors onto problem responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dataset.ErrDatasetEmpty):
		response.ServiceUnavailable(w, r, "datasets not loaded")
	case errors.Is(err, distance.ErrReferenceNotFound):
		response.NotFound(w, r, "reference id not found in distance records")
	default:
		response.InternalError(w, r, "failed to compute result")
	}
}
