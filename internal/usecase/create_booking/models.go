package create_booking

import (
	"time"

	"github.com/vetmogee/schedula/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	SalonID    int64     // ID салона
	EmployeeID int64     // ID сотрудника
	CustomerID int64     // ID клиента (из слоя аутентификации)
	ServiceIDs []int64   // ID выбранных услуг (минимум одна)
	Date       time.Time // Дата бронирования (время внутри суток игнорируется)
	Time       string    // Время начала "HH:MM"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64         // ID созданного бронирования
	SalonID         int64         // ID салона
	EmployeeID      int64         // ID сотрудника
	CustomerID      int64         // ID клиента
	Start           time.Time     // Момент начала
	End             time.Time     // Момент окончания (начало + суммарная длительность)
	DurationMinutes int           // Суммарная длительность услуг в минутах
	Services        []ServiceInfo // Выбранные услуги
	CreatedAt       time.Time     // Время создания
	UpdatedAt       time.Time     // Время обновления
}

// ServiceInfo услуга в составе бронирования
type ServiceInfo struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
}

// validated результат успешной валидации: всё, что нужно транзакции
type validated struct {
	start    time.Time
	end      time.Time
	services []domain.Service
}

func toResponse(b *domain.Booking) *Response {
	services := make([]ServiceInfo, len(b.Services))
	for i := range b.Services {
		services[i] = ServiceInfo{
			ID:              b.Services[i].ID,
			Name:            b.Services[i].Name,
			Price:           b.Services[i].Price,
			DurationMinutes: b.Services[i].DurationMinutes(),
		}
	}

	return &Response{
		ID:              b.ID,
		SalonID:         b.SalonID,
		EmployeeID:      b.EmployeeID,
		CustomerID:      b.CustomerID,
		Start:           b.Date,
		End:             b.End(),
		DurationMinutes: b.DurationMinutes(),
		Services:        services,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
