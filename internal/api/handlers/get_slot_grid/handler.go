package get_slot_grid

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vetmogee/schedula/internal/api/handlers"
	"github.com/vetmogee/schedula/internal/domain"
	getSlotGrid "github.com/vetmogee/schedula/internal/usecase/get_slot_grid"
)

const (
	msgInvalidSalonID    = "Invalid salon ID"
	msgInvalidEmployeeID = "Invalid employee ID"
	msgMissingDate       = "Date is required"
	msgInvalidDate       = "Invalid date format, expected YYYY-MM-DD"
	msgSalonNotFound     = "Salon not found"
	msgEmployeeNotFound  = "Employee not found or does not belong to this salon"
)

type Handler struct {
	useCase GetSlotGridUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/employees/{employeeId}/slot-grid
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/slot-grid - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/slot-grid - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/employees/{id}/slot-grid - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/slot-grid - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	useCaseReq := &getSlotGrid.Request{
		SalonID:    salonID,
		EmployeeID: employeeID,
		Date:       date,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlotGrid.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/employees/{id}/slot-grid - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getSlotGrid.ErrEmployeeNotFound):
			h.logger.Warn("GET /salons/{id}/employees/{id}/slot-grid - Employee not found: salon_id=%d, employee_id=%d",
				salonID, employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		default:
			h.logger.Error("GET /salons/{id}/employees/{id}/slot-grid - Failed to build grid: salon_id=%d, employee_id=%d, error=%v",
				salonID, employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{id}/employees/{id}/slot-grid - Grid built: salon_id=%d, employee_id=%d, slots_count=%d",
		salonID, employeeID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
