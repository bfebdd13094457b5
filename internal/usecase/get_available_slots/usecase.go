package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/vetmogee/schedula/internal/domain"
	salonRepo "github.com/vetmogee/schedula/internal/infra/storage/salon"
)

// UseCase use case получения доступных слотов: для сотрудника, даты и
// набора услуг возвращает валидные времена начала. Путь предпросмотра
// использует тот же детектор конфликтов, что и создание бронирования, -
// собственной логики пересечений здесь нет.
type UseCase struct {
	salonRepo    SalonRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:    salonRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, employee=%d, services=%v, date=%s",
		req.SalonID, req.EmployeeID, req.ServiceIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время
	now := uc.timeProvider.Now()

	// 3. Салон с каталогом и персоналом
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Сотрудник принадлежит салону
	if salon.EmployeeByID(req.EmployeeID) == nil {
		uc.logger.Warn("GetAvailableSlots: employee id=%d not found in salon id=%d", req.EmployeeID, req.SalonID)
		return nil, ErrEmployeeNotFound
	}

	// 5. Услуги принадлежат салону; их суммарная длительность задаёт
	// требуемый размер слота
	services := salon.ServicesByIDs(req.ServiceIDs)
	if len(services) != len(req.ServiceIDs) {
		uc.logger.Warn("GetAvailableSlots: services %v not resolved in salon id=%d", req.ServiceIDs, req.SalonID)
		return nil, ErrServiceNotFound
	}
	durationMinutes := domain.TotalDurationMinutes(services)

	// 6. Существующие бронирования сотрудника за день
	dayStart, dayEnd := domain.DayBounds(req.Date)
	bookings, err := uc.bookingRepo.GetByEmployeeBetween(ctx, req.EmployeeID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Рабочее окно с дефолтами и генерация слотов
	openMinutes, closeMinutes := salon.SlotWindow()
	slots := generateSlots(openMinutes, closeMinutes, durationMinutes, req.Date, now, bookings)

	uc.logger.Info("GetAvailableSlots: %d slots for salon=%d, employee=%d, date=%s (duration=%d min)",
		len(slots), req.SalonID, req.EmployeeID, req.Date.Format(domain.DateFormat), durationMinutes)

	return &Response{
		Date:            req.Date,
		SalonID:         req.SalonID,
		EmployeeID:      req.EmployeeID,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
