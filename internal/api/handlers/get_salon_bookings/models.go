package get_salon_bookings

import (
	"fmt"
	"time"

	"github.com/vetmogee/schedula/internal/domain"
	"github.com/vetmogee/schedula/internal/service/bookings/models"
)

// ToServiceRequest создает запрос сервиса из path и query параметров.
// Обе границы периода опциональны, но должны идти парой.
func ToServiceRequest(salonID int64, startDateStr, endDateStr string) (*models.GetSalonBookingsRequest, error) {
	req := &models.GetSalonBookingsRequest{SalonID: salonID}

	if (startDateStr == "") != (endDateStr == "") {
		return nil, fmt.Errorf("startDate and endDate must be provided together")
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		if endDate.Before(startDate) {
			return nil, fmt.Errorf("endDate must not be before startDate")
		}
		// Конец периода включительно - до конца суток
		endDate = endDate.Add(24*time.Hour - time.Nanosecond)
		req.StartDate = &startDate
		req.EndDate = &endDate
	}

	return req, nil
}
