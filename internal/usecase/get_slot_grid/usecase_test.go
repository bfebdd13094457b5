package get_slot_grid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetmogee/schedula/internal/domain"
	salonRepo "github.com/vetmogee/schedula/internal/infra/storage/salon"
)

type fakeSalonRepo struct {
	salon *domain.Salon
}

func (f *fakeSalonRepo) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, salonRepo.ErrSalonNotFound
	}
	return f.salon, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByEmployeeBetween(_ context.Context, employeeID int64, from, to time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.EmployeeID == employeeID && !b.Date.Before(from) && b.Date.Before(to) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func timeOfDay(h, m int) *time.Time {
	t := time.Date(1970, 1, 1, h, m, 0, 0, time.UTC)
	return &t
}

var (
	testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
)

func testSalon() *domain.Salon {
	return &domain.Salon{
		ID:          1,
		OpeningTime: timeOfDay(9, 0),
		ClosingTime: timeOfDay(12, 0),
		Employees:   []domain.Employee{{ID: 7, SalonID: 1, Name: "Dana"}},
	}
}

func newTestUseCase(salon *domain.Salon, bookings []*domain.Booking, now time.Time) *UseCase {
	uc := NewUseCase(&fakeSalonRepo{salon: salon}, &fakeBookingRepo{bookings: bookings}, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func availability(slots []domain.GridSlot) map[string]bool {
	out := make(map[string]bool, len(slots))
	for _, s := range slots {
		out[s.StartTime.String()] = s.Available
	}
	return out
}

func TestExecute_FullGrid(t *testing.T) {
	uc := newTestUseCase(testSalon(), nil, testNow)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, EmployeeID: 7, Date: testDate})
	require.NoError(t, err)

	// окно 09:00-12:00 с шагом 30 минут: все ячейки присутствуют
	require.Len(t, resp.Slots, 6)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "11:30", resp.Slots[5].StartTime.String())
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s", s.StartTime)
	}
}

func TestExecute_BookedCellsMarked(t *testing.T) {
	// занято 09:45-10:45: пересекает ячейки 09:30, 10:00 и 10:30
	bookings := []*domain.Booking{{
		ID:         1,
		EmployeeID: 7,
		Date:       time.Date(2026, 9, 15, 9, 45, 0, 0, time.UTC),
		Services:   []domain.Service{{ID: 1, Duration: time.Date(1970, 1, 1, 1, 0, 0, 0, time.UTC)}},
	}}
	uc := newTestUseCase(testSalon(), bookings, testNow)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, EmployeeID: 7, Date: testDate})
	require.NoError(t, err)

	got := availability(resp.Slots)
	assert.True(t, got["09:00"])
	assert.False(t, got["09:30"])
	assert.False(t, got["10:00"])
	assert.False(t, got["10:30"])
	assert.True(t, got["11:00"])
	assert.True(t, got["11:30"])
}

func TestExecute_PastCellsMarkedToday(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 10, 0, 0, time.UTC)
	uc := newTestUseCase(testSalon(), nil, now)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, EmployeeID: 7, Date: testDate})
	require.NoError(t, err)

	got := availability(resp.Slots)
	assert.False(t, got["09:00"])
	assert.False(t, got["09:30"])
	assert.False(t, got["10:00"])
	assert.True(t, got["10:30"])
	assert.True(t, got["11:00"])
}

func TestExecute_PastDateAllUnavailable(t *testing.T) {
	now := time.Date(2026, 9, 20, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(testSalon(), nil, now)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, EmployeeID: 7, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 6)
	for _, s := range resp.Slots {
		assert.False(t, s.Available, "slot %s", s.StartTime)
	}
}

func TestExecute_BeyondHorizonAllUnavailable(t *testing.T) {
	uc := newTestUseCase(testSalon(), nil, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 7,
		Date: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 6)
	for _, s := range resp.Slots {
		assert.False(t, s.Available, "slot %s", s.StartTime)
	}
}

func TestExecute_Errors(t *testing.T) {
	uc := newTestUseCase(testSalon(), nil, testNow)

	_, err := uc.Execute(context.Background(), &Request{SalonID: 99, EmployeeID: 7, Date: testDate})
	assert.ErrorIs(t, err, ErrSalonNotFound)

	_, err = uc.Execute(context.Background(), &Request{SalonID: 1, EmployeeID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	_, err = uc.Execute(context.Background(), &Request{SalonID: 0, EmployeeID: 7, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
