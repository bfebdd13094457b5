package create_booking

import (
	"errors"
	"net/http"

	"github.com/vetmogee/schedula/internal/api/handlers"
	"github.com/vetmogee/schedula/internal/api/middleware"
	createBooking "github.com/vetmogee/schedula/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidDate        = "Invalid date format, expected YYYY-MM-DD"
	msgInvalidTime        = "Invalid time format"
	msgMissingCustomer    = "Missing customer ID"
	msgSalonNotFound      = "Salon not found"
	msgEmployeeNotFound   = "Employee not found or does not belong to this salon"
	msgServiceNotFound    = "One or more services not found or do not belong to this salon"
	msgPastBooking        = "Cannot create bookings in the past"
	msgDateTooFar         = "Bookings can only be made up to 1 month in advance"
	msgOutsideHours       = "Booking time is outside salon operating hours"
	msgExceedsClosing     = "Selected time and services would exceed salon closing time"
	msgSlotTaken          = "This time slot is already booked for the selected employee"
	msgInvalidInput       = "Invalid booking parameters"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetCustomerID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing customer ID")
		handlers.RespondUnauthorized(w, msgMissingCustomer)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: customer_id=%d, salon_id=%d, employee_id=%d",
				customerID, req.SalonID, req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrSalonNotFound):
			h.logger.Warn("POST /bookings - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createBooking.ErrEmployeeNotFound):
			h.logger.Warn("POST /bookings - Employee not found: salon_id=%d, employee_id=%d",
				req.SalonID, req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: salon_id=%d, service_ids=%v",
				req.SalonID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidTime):
			h.logger.Warn("POST /bookings - Invalid time: customer_id=%d, time=%q", customerID, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, createBooking.ErrPastBooking):
			h.logger.Warn("POST /bookings - Booking in the past: customer_id=%d, date=%s %s",
				customerID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgPastBooking)

		case errors.Is(err, createBooking.ErrDateTooFarAhead):
			h.logger.Warn("POST /bookings - Date too far ahead: customer_id=%d, date=%s",
				customerID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: salon_id=%d, time=%s",
				req.SalonID, req.Time)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrExceedsClosingTime):
			h.logger.Warn("POST /bookings - Exceeds closing time: salon_id=%d, time=%s",
				req.SalonID, req.Time)
			handlers.RespondBadRequest(w, msgExceedsClosing)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, salon_id=%d, error=%v",
				customerID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, customer_id=%d, salon_id=%d, employee_id=%d",
		result.ID, customerID, req.SalonID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
