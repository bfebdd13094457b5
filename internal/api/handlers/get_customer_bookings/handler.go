package get_customer_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vetmogee/schedula/internal/api/handlers"
	"github.com/vetmogee/schedula/internal/api/middleware"
)

const (
	msgInvalidCustomerID = "Invalid customer ID"
	msgMissingCustomer   = "Missing customer ID"
	msgForbidden         = "Access denied"
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

// Handle GET /api/v1/customers/{customerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/bookings - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	// Клиент видит только свою историю
	authCustomerID, ok := middleware.GetCustomerID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{id}/bookings - Missing customer ID header")
		handlers.RespondUnauthorized(w, msgMissingCustomer)
		return
	}
	if authCustomerID != customerID {
		h.logger.Warn("GET /customers/{id}/bookings - Access denied: path_customer_id=%d, auth_customer_id=%d",
			customerID, authCustomerID)
		handlers.RespondError(w, http.StatusForbidden, msgForbidden)
		return
	}

	result, err := h.service.GetCustomerBookings(r.Context(), customerID)
	if err != nil {
		h.logger.Error("GET /customers/{id}/bookings - Failed to get bookings: customer_id=%d, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /customers/{id}/bookings - Bookings retrieved: customer_id=%d, count=%d",
		customerID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
