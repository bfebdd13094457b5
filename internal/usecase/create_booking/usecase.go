package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sethvargo/go-retry"

	"github.com/vetmogee/schedula/internal/domain"
	salonRepo "github.com/vetmogee/schedula/internal/infra/storage/salon"
)

const (
	// Параметры повторов транзакции при serialization failure
	txRetryBase  = 50 * time.Millisecond
	txMaxRetries = 3
)

// UseCase use case создания бронирования: полный проход валидации и
// атомарная запись с повторной проверкой конфликтов внутри сериализуемой
// транзакции. Повторная проверка закрывает гонку между валидацией и
// коммитом - без неё два конкурентных запроса на один слот прошли бы
// валидацию и оба записались.
type UseCase struct {
	salonRepo    SalonRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:    salonRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: salon=%d, employee=%d, customer=%d, services=%v, date=%s, time=%s",
		req.SalonID, req.EmployeeID, req.CustomerID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время фиксируется один раз на весь проход
	now := uc.timeProvider.Now()

	// 3. Предварительная валидация - чистое чтение без побочных эффектов.
	// Повторный вызов с теми же данными без промежуточных записей даёт
	// то же решение.
	v, err := uc.validate(ctx, req, now)
	if err != nil {
		return nil, err
	}

	// 4. Атомарная запись с повторной проверкой конфликтов.
	// Serialization failure (код 40001) - это проигранная, но разрешимая
	// гонка на уровне БД: повторяем ограниченное число раз с экспоненциальной
	// задержкой. Бизнес-отказы не повторяются никогда.
	var result *domain.Booking

	backoff := retry.WithMaxRetries(txMaxRetries, retry.NewExponential(txRetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			return uc.commitBooking(txCtx, req, v, &result)
		})

		if isSerializationFailure(txErr) {
			uc.metrics.TxRetry()
			uc.logger.Warn("CreateBooking: serialization failure, retrying: %v", txErr)
			return retry.RetryableError(txErr)
		}
		return txErr
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.metrics.BookingConflict()
			return nil, err
		}
		if isBusinessError(err) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d (employee=%d, %s - %s)",
		result.ID, result.EmployeeID,
		result.Date.Format(time.RFC3339), result.End().Format(time.RFC3339))

	return toResponse(result), nil
}

// validate выполняет полный проход проверок до записи (шаги спускаются
// сверху вниз, первый отказ прерывает проход)
func (uc *UseCase) validate(ctx context.Context, req *Request, now time.Time) (*validated, error) {
	// Салон существует
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// Сотрудник принадлежит салону
	if salon.EmployeeByID(req.EmployeeID) == nil {
		uc.logger.Warn("CreateBooking: employee id=%d not found in salon id=%d", req.EmployeeID, req.SalonID)
		return nil, ErrEmployeeNotFound
	}

	// Все услуги принадлежат салону
	services, err := resolveServices(salon, req.ServiceIDs)
	if err != nil {
		uc.logger.Warn("CreateBooking: services %v not resolved in salon id=%d", req.ServiceIDs, req.SalonID)
		return nil, err
	}

	// Строка времени корректна; собираем момент начала
	start, err := parseStartInstant(req.Date, req.Time)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid time %q: %v", req.Time, err)
		return nil, err
	}

	// Не в прошлом и не дальше горизонта
	if err := validateWindow(start, now); err != nil {
		uc.logger.Warn("CreateBooking: window validation failed for %s: %v", start.Format(time.RFC3339), err)
		return nil, err
	}

	// Суммарная длительность и момент окончания
	totalMinutes := domain.TotalDurationMinutes(services)
	end := start.Add(time.Duration(totalMinutes) * time.Minute)

	// Рабочие часы (если заданы)
	if err := validateOperatingHours(salon, start, end); err != nil {
		uc.logger.Warn("CreateBooking: operating hours check failed: %v", err)
		return nil, err
	}

	// Предварительная проверка конфликтов по бронированиям сотрудника за день
	if err := uc.checkConflicts(ctx, req.EmployeeID, start, end); err != nil {
		return nil, err
	}

	return &validated{start: start, end: end, services: services}, nil
}

// commitBooking повторяет проверку конфликтов внутри транзакции и создаёт
// бронирование. Чтение дня сотрудника здесь идёт с FOR UPDATE (см.
// репозиторий), поэтому конкурентная вставка не может пройти между
// проверкой и записью.
func (uc *UseCase) commitBooking(txCtx context.Context, req *Request, v *validated, result **domain.Booking) error {
	if err := uc.checkConflicts(txCtx, req.EmployeeID, v.start, v.end); err != nil {
		return err
	}

	booking := &domain.Booking{
		SalonID:    req.SalonID,
		EmployeeID: req.EmployeeID,
		CustomerID: req.CustomerID,
		Date:       v.start,
		Services:   v.services,
	}

	created, err := uc.bookingRepo.Create(txCtx, booking)
	if err != nil {
		return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	*result = created
	return nil
}

// checkConflicts ищет пересечение [start, end) с бронированиями сотрудника
// за календарный день начала
func (uc *UseCase) checkConflicts(ctx context.Context, employeeID int64, start, end time.Time) error {
	dayStart, dayEnd := domain.DayBounds(start)

	existing, err := uc.bookingRepo.GetByEmployeeBetween(ctx, employeeID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get employee bookings: %v", err)
		return fmt.Errorf("%w: failed to get employee bookings: %v", ErrInternal, err)
	}

	if taken, conflicting := domain.FindConflict(existing, start, end); taken {
		uc.logger.Warn("CreateBooking: slot taken, employee=%d overlaps booking id=%d", employeeID, conflicting.ID)
		return ErrSlotTaken
	}

	return nil
}

// isSerializationFailure распознаёт ошибки сериализации PostgreSQL
// (40001 serialization_failure, 40P01 deadlock_detected)
func isSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// isBusinessError отличает детерминированные бизнес-отказы от
// инфраструктурных сбоев
func isBusinessError(err error) bool {
	for _, sentinel := range []error{
		ErrSalonNotFound,
		ErrEmployeeNotFound,
		ErrServiceNotFound,
		ErrInvalidTime,
		ErrPastBooking,
		ErrDateTooFarAhead,
		ErrOutsideOperatingHours,
		ErrExceedsClosingTime,
		ErrSlotTaken,
		ErrInvalidInput,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
