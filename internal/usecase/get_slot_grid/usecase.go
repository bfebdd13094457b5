package get_slot_grid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vetmogee/schedula/internal/domain"
	salonRepo "github.com/vetmogee/schedula/internal/infra/storage/salon"
	"github.com/vetmogee/schedula/pkg/types"
)

// UseCase use case сетки слотов: упрощённый календарный вид дня с шагом
// 30 минут, который показывается до выбора услуг. В отличие от
// GetAvailableSlots сетка возвращает все ячейки дня с признаком
// доступности - занятые, прошедшие и находящиеся за горизонтом ячейки
// помечаются, а не скрываются. Пересечения считает тот же
// domain.Overlaps, что и основной поток бронирования.
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

// Execute выполняет use case построения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotGrid: salon=%d, employee=%d, date=%s",
		req.SalonID, req.EmployeeID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotGrid: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetSlotGrid: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetSlotGrid: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	if salon.EmployeeByID(req.EmployeeID) == nil {
		uc.logger.Warn("GetSlotGrid: employee id=%d not found in salon id=%d", req.EmployeeID, req.SalonID)
		return nil, ErrEmployeeNotFound
	}

	dayStart, dayEnd := domain.DayBounds(req.Date)
	bookings, err := uc.bookingRepo.GetByEmployeeBetween(ctx, req.EmployeeID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetSlotGrid: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	openMinutes, closeMinutes := salon.SlotWindow()
	slots := buildGrid(openMinutes, closeMinutes, req.Date, now, bookings)

	uc.logger.Info("GetSlotGrid: %d cells for salon=%d, employee=%d, date=%s",
		len(slots), req.SalonID, req.EmployeeID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		SalonID:    req.SalonID,
		EmployeeID: req.EmployeeID,
		Slots:      slots,
	}, nil
}

// buildGrid строит все ячейки рабочего окна с шагом 30 минут
func buildGrid(openMinutes, closeMinutes int, date, now time.Time, bookings []*domain.Booking) []domain.GridSlot {
	dayStart, _ := domain.DayBounds(date)
	maxInstant := domain.MaxBookingInstant(now)
	isToday := domain.SameDay(date, now)

	grid := make([]domain.GridSlot, 0)
	for startMin := openMinutes; startMin < closeMinutes; startMin += domain.GridStepMinutes {
		slotStart := dayStart.Add(time.Duration(startMin) * time.Minute)
		slotEnd := slotStart.Add(domain.GridStepMinutes * time.Minute)

		available := true
		switch {
		case slotStart.Before(now) && isToday:
			available = false
		case dayStart.Before(now) && !isToday:
			// Дата целиком в прошлом
			available = false
		case slotStart.After(maxInstant):
			available = false
		default:
			taken, _ := domain.FindConflict(bookings, slotStart, slotEnd)
			available = !taken
		}

		ts, err := types.FromMinutes(startMin)
		if err != nil {
			continue
		}
		grid = append(grid, domain.GridSlot{StartTime: ts, Available: available})
	}

	return grid
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
