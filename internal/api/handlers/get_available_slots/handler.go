package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vetmogee/schedula/internal/api/handlers"
	getAvailableSlots "github.com/vetmogee/schedula/internal/usecase/get_available_slots"
)

const (
	msgInvalidSalonID    = "Invalid salon ID"
	msgInvalidEmployeeID = "Invalid employee ID"
	msgMissingServiceIDs = "At least one service ID is required"
	msgInvalidServiceIDs = "Invalid service IDs"
	msgMissingDate       = "Date is required"
	msgInvalidDate       = "Invalid date format, expected YYYY-MM-DD"
	msgSalonNotFound     = "Salon not found"
	msgEmployeeNotFound  = "Employee not found or does not belong to this salon"
	msgServiceNotFound   = "One or more services not found or do not belong to this salon"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/employees/{employeeId}/available-slots
// Query params: serviceIds (required, "1,2,3"), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/available-slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/available-slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	serviceIDsStr := r.URL.Query().Get("serviceIds")
	if serviceIDsStr == "" {
		h.logger.Warn("GET /salons/{id}/employees/{id}/available-slots - Missing service IDs")
		handlers.RespondBadRequest(w, msgMissingServiceIDs)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/employees/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	serviceIDs, err := ParseServiceIDs(serviceIDsStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/available-slots - Invalid service IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	date, err := ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	useCaseReq := &getAvailableSlots.Request{
		SalonID:    salonID,
		EmployeeID: employeeID,
		ServiceIDs: serviceIDs,
		Date:       date,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/employees/{id}/available-slots - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /salons/{id}/employees/{id}/available-slots - Employee not found: salon_id=%d, employee_id=%d",
				salonID, employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/employees/{id}/available-slots - Service not found: salon_id=%d, service_ids=%s",
				salonID, serviceIDsStr)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /salons/{id}/employees/{id}/available-slots - Failed to get slots: salon_id=%d, employee_id=%d, error=%v",
				salonID, employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{id}/employees/{id}/available-slots - Slots retrieved: salon_id=%d, employee_id=%d, slots_count=%d",
		salonID, employeeID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
