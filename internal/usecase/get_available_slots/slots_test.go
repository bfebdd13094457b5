package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetmogee/schedula/internal/domain"
	salonRepo "github.com/vetmogee/schedula/internal/infra/storage/salon"
	"github.com/vetmogee/schedula/pkg/types"
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

func durationOf(minutes int) time.Time {
	return time.Date(1970, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
}

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
		Name:        "Glow Studio",
		OpeningTime: timeOfDay(9, 0),
		ClosingTime: timeOfDay(18, 0),
		Employees: []domain.Employee{
			{ID: 7, SalonID: 1, Name: "Dana"},
		},
		Services: []domain.Service{
			{ID: 1, SalonID: 1, CategoryID: 1, Name: "Haircut", Price: 40, Duration: durationOf(30)},
			{ID: 2, SalonID: 1, CategoryID: 1, Name: "Coloring", Price: 80, Duration: durationOf(45)},
		},
	}
}

func newTestUseCase(salon *domain.Salon, bookings []*domain.Booking, now time.Time) *UseCase {
	uc := NewUseCase(&fakeSalonRepo{salon: salon}, &fakeBookingRepo{bookings: bookings}, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := newTestUseCase(testSalon(), nil, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:    1,
		EmployeeID: 7,
		ServiceIDs: []int64{1, 2}, // 75 минут
		Date:       testDate,
	})
	require.NoError(t, err)

	got := slotStrings(resp.Slots)
	assert.Equal(t, 75, resp.DurationMinutes)

	// первый слот - открытие, шаг 15 минут
	assert.Equal(t, "09:00", got[0])
	assert.Equal(t, "09:15", got[1])

	// последний слот, в который 75 минут умещаются до 18:00
	assert.Equal(t, "16:45", got[len(got)-1])

	// 09:00..16:45 с шагом 15 минут
	assert.Len(t, got, 32)
}

func TestExecute_SlotsAroundBooking(t *testing.T) {
	// занято 10:30-11:00
	bookings := []*domain.Booking{{
		ID:         1,
		EmployeeID: 7,
		Date:       time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC),
		Services:   []domain.Service{{ID: 1, Duration: durationOf(30)}},
	}}
	uc := newTestUseCase(testSalon(), bookings, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:    1,
		EmployeeID: 7,
		ServiceIDs: []int64{1}, // 30 минут
		Date:       testDate,
	})
	require.NoError(t, err)

	got := slotStrings(resp.Slots)

	// 10:00 закончился бы ровно в 10:30 - граница не конфликтует
	assert.Contains(t, got, "10:00")
	// 10:15, 10:30, 10:45 пересекаются с занятым интервалом
	assert.NotContains(t, got, "10:15")
	assert.NotContains(t, got, "10:30")
	assert.NotContains(t, got, "10:45")
	// 11:00 начинается ровно на границе окончания
	assert.Contains(t, got, "11:00")
}

func TestExecute_TodaySkipsPastTimes(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 40, 0, 0, time.UTC)
	uc := newTestUseCase(testSalon(), nil, now)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:    1,
		EmployeeID: 7,
		ServiceIDs: []int64{1},
		Date:       testDate,
	})
	require.NoError(t, err)

	got := slotStrings(resp.Slots)

	// всё до 12:40 отфильтровано
	assert.NotContains(t, got, "12:30")
	assert.Equal(t, "12:45", got[0])
}

func TestExecute_PastDateHasNoSlots(t *testing.T) {
	now := time.Date(2026, 9, 16, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(testSalon(), nil, now)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:    1,
		EmployeeID: 7,
		ServiceIDs: []int64{1},
		Date:       testDate,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BeyondHorizonHasNoSlots(t *testing.T) {
	uc := newTestUseCase(testSalon(), nil, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:    1,
		EmployeeID: 7,
		ServiceIDs: []int64{1},
		Date:       time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), // now+1 месяц+1 день
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DefaultHoursWhenUnset(t *testing.T) {
	salon := testSalon()
	salon.OpeningTime = nil
	salon.ClosingTime = nil
	uc := newTestUseCase(salon, nil, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:    1,
		EmployeeID: 7,
		ServiceIDs: []int64{1},
		Date:       testDate,
	})
	require.NoError(t, err)

	got := slotStrings(resp.Slots)
	// дефолтное окно 09:00-17:00
	assert.Equal(t, "09:00", got[0])
	assert.Equal(t, "16:30", got[len(got)-1])
}

func TestExecute_FallbackWindowWhenClosingNotAfterOpening(t *testing.T) {
	salon := testSalon()
	salon.OpeningTime = timeOfDay(10, 0)
	salon.ClosingTime = timeOfDay(8, 0)
	uc := newTestUseCase(salon, nil, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:    1,
		EmployeeID: 7,
		ServiceIDs: []int64{1},
		Date:       testDate,
	})
	require.NoError(t, err)

	got := slotStrings(resp.Slots)
	// окно [10:00, 18:00): 8 часов от открытия
	assert.Equal(t, "10:00", got[0])
	assert.Equal(t, "17:30", got[len(got)-1])
}

func TestExecute_Errors(t *testing.T) {
	t.Run("salon not found", func(t *testing.T) {
		uc := newTestUseCase(testSalon(), nil, testNow)
		_, err := uc.Execute(context.Background(), &Request{
			SalonID: 99, EmployeeID: 7, ServiceIDs: []int64{1}, Date: testDate,
		})
		assert.ErrorIs(t, err, ErrSalonNotFound)
	})

	t.Run("employee not in salon", func(t *testing.T) {
		uc := newTestUseCase(testSalon(), nil, testNow)
		_, err := uc.Execute(context.Background(), &Request{
			SalonID: 1, EmployeeID: 99, ServiceIDs: []int64{1}, Date: testDate,
		})
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		uc := newTestUseCase(testSalon(), nil, testNow)
		_, err := uc.Execute(context.Background(), &Request{
			SalonID: 1, EmployeeID: 7, ServiceIDs: []int64{99}, Date: testDate,
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("no services", func(t *testing.T) {
		uc := newTestUseCase(testSalon(), nil, testNow)
		_, err := uc.Execute(context.Background(), &Request{
			SalonID: 1, EmployeeID: 7, Date: testDate,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
