package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/vetmogee/schedula/internal/infra/storage/booking"
	"github.com/vetmogee/schedula/internal/service/bookings/models"
)

// Service сервис чтения бронирований: календари салона, история и
// ближайшее бронирование клиента. Запись бронирований идёт только через
// usecase создания - здесь исключительно чтение.
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetSalonBookings получает бронирования салона для календарных видов.
// Период опционален: обе границы включительны.
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	if req.SalonID <= 0 {
		return nil, fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	logMsg := fmt.Sprintf("GetSalonBookings: fetching bookings for salon=%d", req.SalonID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}
	s.logger.Info(logMsg)

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCustomerBookings получает историю бронирований клиента (сначала новые)
func (s *Service) GetCustomerBookings(ctx context.Context, customerID int64) (*models.BookingListResponse, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d", customerID)

	bookings, err := s.bookingRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), customerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetNextUpcomingBooking получает ближайшее предстоящее бронирование
// клиента; nil без ошибки, если таких нет (для баннера на главной)
func (s *Service) GetNextUpcomingBooking(ctx context.Context, customerID int64) (*models.BookingResponse, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	s.logger.Info("GetNextUpcomingBooking: fetching for customer=%d", customerID)

	booking, err := s.bookingRepo.GetNextByCustomer(ctx, customerID, s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, nil
		}
		s.logger.Error("GetNextUpcomingBooking: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetNextUpcomingBooking - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}
