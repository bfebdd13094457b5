package get_salon_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vetmogee/schedula/internal/api/handlers"
)

const (
	msgInvalidSalonID = "Invalid salon ID"
	msgInvalidParams  = "Invalid request parameters"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/bookings
// Query params: startDate, endDate (опционально, парой, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	startDateStr := r.URL.Query().Get("startDate")
	endDateStr := r.URL.Query().Get("endDate")

	serviceReq, err := ToServiceRequest(salonID, startDateStr, endDateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetSalonBookings(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /salons/{id}/bookings - Failed to get bookings: salon_id=%d, error=%v",
			salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/bookings - Bookings retrieved: salon_id=%d, count=%d",
		salonID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
