package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetmogee/schedula/internal/domain"
	salonRepo "github.com/vetmogee/schedula/internal/infra/storage/salon"
)

// --- фейки ---

type fakeSalonRepo struct {
	salon *domain.Salon
	err   error
}

func (f *fakeSalonRepo) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.salon == nil || f.salon.ID != id {
		return nil, salonRepo.ErrSalonNotFound
	}
	return f.salon, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.bookings = append(f.bookings, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) GetByEmployeeBetween(_ context.Context, employeeID int64, from, to time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.EmployeeID == employeeID && !b.Date.Before(from) && b.Date.Before(to) {
			result = append(result, b)
		}
	}
	return result, nil
}

// fakeTxManager даёт ту же гарантию взаимного исключения, что и
// сериализуемая транзакция: проверка и запись идут под одним мьютексом
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

// failingTxManager имитирует serialization failure первые n вызовов
type failingTxManager struct {
	inner    fakeTxManager
	failures int
	calls    int
}

func (f *failingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.calls <= f.failures {
		return &pq.Error{Code: "40001"}
	}
	return f.inner.DoSerializable(ctx, fn)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingMetrics struct {
	created, conflicts, retries int
}

func (c *countingMetrics) BookingCreated()  { c.created++ }
func (c *countingMetrics) BookingConflict() { c.conflicts++ }
func (c *countingMetrics) TxRetry()         { c.retries++ }

// --- фикстуры ---

func durationOf(minutes int) time.Time {
	return time.Date(1970, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
}

func timeOfDay(h, m int) *time.Time {
	t := time.Date(1970, 1, 1, h, m, 0, 0, time.UTC)
	return &t
}

// салон с часами работы 09:00-18:00, одним мастером и услугами 30 и 45 минут
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

func newTestUseCase(salon *domain.Salon, now time.Time) (*UseCase, *fakeBookingRepo, *countingMetrics) {
	bookings := &fakeBookingRepo{}
	counters := &countingMetrics{}
	uc := NewUseCase(&fakeSalonRepo{salon: salon}, bookings, &fakeTxManager{}, counters, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc, bookings, counters
}

func validRequest() *Request {
	return &Request{
		SalonID:    1,
		EmployeeID: 7,
		CustomerID: 42,
		ServiceIDs: []int64{1, 2},
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Time:       "10:00",
	}
}

var testNow = time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	uc, _, counters := newTestUseCase(testSalon(), testNow)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(42), resp.CustomerID)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), resp.Start)
	// 30 + 45 = 75 минут
	assert.Equal(t, 75, resp.DurationMinutes)
	assert.Equal(t, resp.Start.Add(75*time.Minute), resp.End)
	require.Len(t, resp.Services, 2)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
	assert.Equal(t, 1, counters.created)
}

func TestExecute_InputValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero salon id", mutate: func(r *Request) { r.SalonID = 0 }},
		{name: "negative employee id", mutate: func(r *Request) { r.EmployeeID = -1 }},
		{name: "zero customer id", mutate: func(r *Request) { r.CustomerID = 0 }},
		{name: "no services", mutate: func(r *Request) { r.ServiceIDs = nil }},
		{name: "non-positive service id", mutate: func(r *Request) { r.ServiceIDs = []int64{1, 0} }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newTestUseCase(testSalon(), testNow)
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ReferenceChecks(t *testing.T) {
	t.Run("salon not found", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.SalonID = 99

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSalonNotFound)
	})

	t.Run("employee not in salon", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.EmployeeID = 8

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.ServiceIDs = []int64{1, 99}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("duplicate service ids", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.ServiceIDs = []int64{1, 1}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestExecute_TimeWindow(t *testing.T) {
	t.Run("invalid time string", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.Time = "25:00"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTime)
	})

	t.Run("in the past", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.Time = "07:00" // now is 08:00 the same day

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPastBooking)
	})

	t.Run("start equal to now is allowed", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.Time = "09:00"
		now := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
		uc.timeProvider = &fixedTime{now: now}

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("exactly one month ahead is allowed", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.Date = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("beyond one month horizon", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.Date = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarAhead)
	})
}

func TestExecute_OperatingHours(t *testing.T) {
	t.Run("before opening", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.Time = "08:30"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("at closing time", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.Time = "18:00"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("services run past closing", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.Time = "17:00" // 75 минут не умещаются до 18:00

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrExceedsClosingTime)
	})

	t.Run("fits exactly until closing", func(t *testing.T) {
		uc, _, _ := newTestUseCase(testSalon(), testNow)
		req := validRequest()
		req.ServiceIDs = []int64{2} // 45 минут
		req.Time = "17:15"

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("no hours configured skips the check", func(t *testing.T) {
		salon := testSalon()
		salon.OpeningTime = nil
		salon.ClosingTime = nil
		uc, _, _ := newTestUseCase(salon, testNow)
		req := validRequest()
		req.Time = "22:00" // вне дефолтного окна, но часы не заданы

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestExecute_Conflicts(t *testing.T) {
	t.Run("overlapping booking is rejected", func(t *testing.T) {
		uc, bookings, counters := newTestUseCase(testSalon(), testNow)

		// занятый интервал 10:30-11:00
		_, err := bookings.Create(context.Background(), &domain.Booking{
			SalonID:    1,
			EmployeeID: 7,
			CustomerID: 5,
			Date:       time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC),
			Services:   []domain.Service{{ID: 1, Duration: durationOf(30)}},
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), validRequest()) // 10:00-11:15
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Equal(t, 1, counters.conflicts)
	})

	t.Run("back-to-back booking is allowed", func(t *testing.T) {
		uc, bookings, _ := newTestUseCase(testSalon(), testNow)

		// занятый интервал 09:30-10:00, новый начинается ровно в 10:00
		_, err := bookings.Create(context.Background(), &domain.Booking{
			SalonID:    1,
			EmployeeID: 7,
			CustomerID: 5,
			Date:       time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC),
			Services:   []domain.Service{{ID: 1, Duration: durationOf(30)}},
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("other employee does not conflict", func(t *testing.T) {
		salon := testSalon()
		salon.Employees = append(salon.Employees, domain.Employee{ID: 8, SalonID: 1, Name: "Mia"})
		uc, bookings, _ := newTestUseCase(salon, testNow)

		_, err := bookings.Create(context.Background(), &domain.Booking{
			SalonID:    1,
			EmployeeID: 8,
			CustomerID: 5,
			Date:       time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
			Services:   []domain.Service{{ID: 1, Duration: durationOf(30)}},
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})
}

// Валидация - чистое чтение: повторный проход с теми же данными и без
// промежуточных записей даёт то же решение.
func TestValidate_Idempotent(t *testing.T) {
	uc, _, _ := newTestUseCase(testSalon(), testNow)
	req := validRequest()

	first, err := uc.validate(context.Background(), req, testNow)
	require.NoError(t, err)

	second, err := uc.validate(context.Background(), req, testNow)
	require.NoError(t, err)

	assert.Equal(t, first.start, second.start)
	assert.Equal(t, first.end, second.end)
	assert.Equal(t, first.services, second.services)
}

// Два конкурентных запроса на один слот: ровно один выигрывает, второй
// получает тот же ErrSlotTaken, что и при предварительной проверке.
func TestExecute_ConcurrentSameSlot(t *testing.T) {
	uc, bookings, _ := newTestUseCase(testSalon(), testNow)

	req1 := validRequest()
	req2 := validRequest()
	req2.CustomerID = 43

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.Execute(context.Background(), req1)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.Execute(context.Background(), req2)
	}()
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Len(t, bookings.bookings, 1)
}

func TestExecute_RetriesSerializationFailure(t *testing.T) {
	counters := &countingMetrics{}
	txMgr := &failingTxManager{failures: 2}
	uc := NewUseCase(&fakeSalonRepo{salon: testSalon()}, &fakeBookingRepo{}, txMgr, counters, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, 3, txMgr.calls)
	assert.Equal(t, 2, counters.retries)
	assert.Equal(t, 1, counters.created)
}

func TestExecute_GivesUpAfterMaxRetries(t *testing.T) {
	counters := &countingMetrics{}
	txMgr := &failingTxManager{failures: 100}
	uc := NewUseCase(&fakeSalonRepo{salon: testSalon()}, &fakeBookingRepo{}, txMgr, counters, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	// первый вызов + txMaxRetries повторов
	assert.Equal(t, txMaxRetries+1, txMgr.calls)
	assert.Equal(t, 0, counters.created)
}
