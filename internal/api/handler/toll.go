package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tollgrid/tollgrid/internal/api/models"
	"github.com/tollgrid/tollgrid/internal/api/response"
	"github.com/tollgrid/tollgrid/internal/pipeline"
)

// TollHandler handles toll rate endpoints.
type TollHandler struct {
	service *pipeline.Service
}

// NewTollHandler creates a new TollHandler.
func NewTollHandler(service *pipeline.Service) *TollHandler {
	return &TollHandler{service: service}
}

// Rates handles GET /v1/toll/rates - base per-vehicle toll rates.
func (h *TollHandler) Rates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.BaseTollRates(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.TollRates{Rates: rates})
}

// ScheduleRates handles POST /v1/toll/rates:schedule - stamp a
// day/time window onto every rate and apply the matching discount.
func (h *TollHandler) ScheduleRates(w http.ResponseWriter, r *http.Request) {
	var input models.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	sched, fieldErrors := input.Validate()
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid schedule", fieldErrors)
		return
	}

	rates, err := h.service.ScheduledTollRates(r.Context(), sched)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.TollRates{Rates: rates})
}
