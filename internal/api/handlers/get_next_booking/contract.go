package get_next_booking

import (
	"context"

	"github.com/vetmogee/schedula/internal/service/bookings/models"
)

type BookingService interface {
	GetNextUpcomingBooking(ctx context.Context, customerID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
