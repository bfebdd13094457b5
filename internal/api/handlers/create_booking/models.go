package create_booking

import (
	"time"

	"github.com/vetmogee/schedula/internal/domain"
	createBooking "github.com/vetmogee/schedula/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID    int64   `json:"salonId"`
	EmployeeID int64   `json:"employeeId"`
	ServiceIDs []int64 `json:"serviceIds"`
	Date       string  `json:"date"` // "2026-09-15"
	Time       string  `json:"time"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64             `json:"id"`
	SalonID         int64             `json:"salonId"`
	EmployeeID      int64             `json:"employeeId"`
	CustomerID      int64             `json:"customerId"`
	Date            string            `json:"date"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime"`
	DurationMinutes int               `json:"durationMinutes"`
	Services        []ServiceResponse `json:"services"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
}

// ServiceResponse услуга в составе бронирования
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	// Парсим дату; время начала валидирует сам use case
	bookingDate, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		SalonID:    r.SalonID,
		EmployeeID: r.EmployeeID,
		CustomerID: customerID,
		ServiceIDs: r.ServiceIDs,
		Date:       bookingDate,
		Time:       r.Time,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	services := make([]ServiceResponse, len(resp.Services))
	for i, svc := range resp.Services {
		services[i] = ServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		}
	}

	return &BookingResponse{
		ID:              resp.ID,
		SalonID:         resp.SalonID,
		EmployeeID:      resp.EmployeeID,
		CustomerID:      resp.CustomerID,
		Date:            resp.Start.Format(domain.DateFormat),
		StartTime:       resp.Start.Format(domain.TimeFormat),
		EndTime:         resp.End.Format(domain.TimeFormat),
		DurationMinutes: resp.DurationMinutes,
		Services:        services,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
