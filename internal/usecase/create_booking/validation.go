package create_booking

import (
	"fmt"
	"time"

	"github.com/vetmogee/schedula/internal/domain"
	"github.com/vetmogee/schedula/pkg/timeutil"
	"github.com/vetmogee/schedula/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceID is required", ErrInvalidInput)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// parseStartInstant склеивает дату и строку "HH:MM" в момент начала.
// Компонент времени внутри даты обнуляется - за неё отвечает строка времени.
func parseStartInstant(date time.Time, timeStr string) (time.Time, error) {
	ts, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	minutes, err := ts.Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0,
		date.Location(),
	), nil
}

// resolveServices сопоставляет запрошенные ID с каталогом салона.
// Размер результата обязан совпасть с размером запроса - так ловятся
// и неизвестные ID, и услуги чужого салона, и дубликаты в запросе.
func resolveServices(salon *domain.Salon, serviceIDs []int64) ([]domain.Service, error) {
	services := salon.ServicesByIDs(serviceIDs)
	if len(services) != len(serviceIDs) {
		return nil, ErrServiceNotFound
	}
	return services, nil
}

// validateWindow проверяет границы по времени: не в прошлом и не дальше
// горизонта бронирования
func validateWindow(start, now time.Time) error {
	if start.Before(now) {
		return ErrPastBooking
	}

	if start.After(domain.MaxBookingInstant(now)) {
		return ErrDateTooFarAhead
	}

	return nil
}

// validateOperatingHours проверяет попадание интервала в рабочие часы.
// Если часы не заданы (любая из границ nil), проверка пропускается целиком.
func validateOperatingHours(salon *domain.Salon, start, end time.Time) error {
	openMin, closeMin, ok := salon.OperatingMinutes()
	if !ok {
		return nil
	}

	startMin := timeutil.MinuteOfDay(start)
	if startMin < openMin || startMin >= closeMin {
		return ErrOutsideOperatingHours
	}

	// Конец не должен выходить за закрытие в тот же календарный день
	closing := time.Date(start.Year(), start.Month(), start.Day(),
		closeMin/60, closeMin%60, 0, 0, start.Location())
	if end.After(closing) {
		return ErrExceedsClosingTime
	}

	return nil
}
