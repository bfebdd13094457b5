package models

import (
	"time"

	"github.com/vetmogee/schedula/internal/domain"
	"github.com/vetmogee/schedula/pkg/timeutil"
)

// GetSalonBookingsRequest запрос на получение бронирований салона
type GetSalonBookingsRequest struct {
	SalonID   int64      `json:"salonId"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonBookingsRequest) ToDomainFilter() domain.SalonBookingsFilter {
	return domain.SalonBookingsFilter{
		SalonID:   r.SalonID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// BookingResponse бронирование в ответе сервиса
type BookingResponse struct {
	ID              int64             `json:"id"`
	SalonID         int64             `json:"salonId"`
	EmployeeID      int64             `json:"employeeId"`
	CustomerID      int64             `json:"customerId"`
	Start           time.Time         `json:"start"`
	End             time.Time         `json:"end"`
	DurationMinutes int               `json:"durationMinutes"`
	Duration        string            `json:"duration"` // человекочитаемо, например "1h 15min"
	Services        []ServiceResponse `json:"services"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// ServiceResponse услуга в составе бронирования
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain бронирование в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	services := make([]ServiceResponse, len(b.Services))
	for i := range b.Services {
		services[i] = ServiceResponse{
			ID:              b.Services[i].ID,
			Name:            b.Services[i].Name,
			Price:           b.Services[i].Price,
			DurationMinutes: b.Services[i].DurationMinutes(),
		}
	}

	minutes := b.DurationMinutes()

	return &BookingResponse{
		ID:              b.ID,
		SalonID:         b.SalonID,
		EmployeeID:      b.EmployeeID,
		CustomerID:      b.CustomerID,
		Start:           b.Date,
		End:             b.End(),
		DurationMinutes: minutes,
		Duration:        timeutil.FormatHuman(minutes),
		Services:        services,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = *FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
