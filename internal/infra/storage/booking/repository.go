package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vetmogee/schedula/internal/domain"
	"github.com/vetmogee/schedula/pkg/dbmetrics"
	"github.com/vetmogee/schedula/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями.
// Таблица bookings - единственный изменяемый разделяемый ресурс движка,
// поэтому кэширования здесь нет: каждая валидация перечитывает текущее
// состояние из БД.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со строками booking_services.
// Если в контексте передана активная транзакция (через context.Value),
// использует её - создание из usecase всегда идёт внутри сериализуемой
// транзакции с повторной проверкой конфликтов.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if len(b.Services) == 0 {
		return nil, ErrNoServices
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"salon_id",
			"employee_id",
			"customer_id",
			"date",
		).
		Values(
			b.SalonID,
			b.EmployeeID,
			b.CustomerID,
			b.Date,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	// Вставляем join-строки одним запросом
	joinBuilder := psqlbuilder.Insert("booking_services").
		Columns("booking_id", "service_id")
	for i := range b.Services {
		joinBuilder = joinBuilder.Values(b.ID, b.Services[i].ID)
	}

	query, args, err = joinBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build join insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - insert booking services: %v", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID вместе с услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	bookings, err := r.selectBookings(ctx, executor, squirrel.Eq{"id": id}, "date ASC", false)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return bookings[0], nil
}

// GetByEmployeeBetween получает бронирования сотрудника в интервале
// [from, to) вместе с услугами (длительности нужны для расчёта конца).
//
// Внутри транзакции запрос выполняется с FOR UPDATE: повторная проверка
// конфликтов в usecase создания блокирует строки дня сотрудника, чтобы
// две конкурентные транзакции не увидели одновременно "конфликтов нет".
func (r *Repository) GetByEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{
		squirrel.Eq{"employee_id": employeeID},
		squirrel.GtOrEq{"date": from},
		squirrel.Lt{"date": to},
	}

	return r.selectBookings(ctx, executor, where, "date ASC", dbmetrics.IsInTransaction(ctx))
}

// GetBySalonWithFilter получает бронирования салона, опционально
// ограниченные периодом (включительно с обеих сторон - для календарей)
func (r *Repository) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"salon_id": filter.SalonID}}
	if filter.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"date": *filter.EndDate})
	}

	return r.selectBookings(ctx, executor, where, "date ASC", false)
}

// GetByCustomer получает историю бронирований клиента (сначала новые)
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	return r.selectBookings(ctx, executor, squirrel.Eq{"customer_id": customerID}, "date DESC", false)
}

// GetNextByCustomer получает ближайшее предстоящее бронирование клиента.
// Если предстоящих бронирований нет, возвращает ErrBookingNotFound.
func (r *Repository) GetNextByCustomer(ctx context.Context, customerID int64, now time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{
		squirrel.Eq{"customer_id": customerID},
		squirrel.GtOrEq{"date": now},
	}

	bookings, err := r.selectBookingsLimit(ctx, executor, where, "date ASC", false, 1)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return bookings[0], nil
}

// selectBookings выполняет выборку бронирований по условию и догружает услуги
func (r *Repository) selectBookings(ctx context.Context, executor DBExecutor, where interface{}, orderBy string, forUpdate bool) ([]*domain.Booking, error) {
	return r.selectBookingsLimit(ctx, executor, where, orderBy, forUpdate, 0)
}

func (r *Repository) selectBookingsLimit(ctx context.Context, executor DBExecutor, where interface{}, orderBy string, forUpdate bool, limit uint64) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(
		"id",
		"salon_id",
		"employee_id",
		"customer_id",
		"date",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(where).
		OrderBy(orderBy)

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: selectBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: selectBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.SalonID,
			&b.EmployeeID,
			&b.CustomerID,
			&b.Date,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: selectBookings - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: selectBookings - rows error: %v", ErrScanRow, err)
	}

	if err := r.loadServices(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// loadServices догружает услуги для набора бронирований одним запросом
func (r *Repository) loadServices(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	query, args, err := psqlbuilder.Select(
		"bs.booking_id",
		"s.id",
		"s.salon_id",
		"s.category_id",
		"s.name",
		"s.price",
		"s.duration",
		"s.created_at",
	).
		From("booking_services bs").
		Join("services s ON s.id = bs.service_id").
		Where(squirrel.Eq{"bs.booking_id": ids}).
		OrderBy("bs.booking_id ASC, s.id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID int64
		var s domain.Service
		var createdAt sql.NullTime

		err := rows.Scan(
			&bookingID,
			&s.ID,
			&s.SalonID,
			&s.CategoryID,
			&s.Name,
			&s.Price,
			&s.Duration,
			&createdAt,
		)
		if err != nil {
			return fmt.Errorf("%w: loadServices - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		if b, ok := byID[bookingID]; ok {
			b.Services = append(b.Services, s)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}
