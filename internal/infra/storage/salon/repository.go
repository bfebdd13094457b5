package salon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vetmogee/schedula/internal/domain"
	"github.com/vetmogee/schedula/pkg/dbmetrics"
	"github.com/vetmogee/schedula/pkg/psqlbuilder"
)

// Repository репозиторий для чтения салонов с вложенными сотрудниками и услугами.
// Движок бронирования только читает эти данные - их изменение происходит
// в настройках салона вне этого сервиса.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает салон по ID вместе со списками сотрудников и услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"address",
		"city",
		"currency",
		"opening_time",
		"closing_time",
		"created_at",
		"updated_at",
	).
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Salon
	var openingTime, closingTime sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Address,
		&s.City,
		&s.Currency,
		&openingTime,
		&closingTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan salon: %v", ErrScanRow, err)
	}

	if openingTime.Valid {
		t := openingTime.Time
		s.OpeningTime = &t
	}
	if closingTime.Valid {
		t := closingTime.Time
		s.ClosingTime = &t
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	// Загружаем вложенные сущности
	if s.Employees, err = r.getEmployees(ctx, executor, id); err != nil {
		return nil, err
	}
	if s.Services, err = r.getServices(ctx, executor, id); err != nil {
		return nil, err
	}

	return &s, nil
}

// getEmployees получает всех сотрудников салона
func (r *Repository) getEmployees(ctx context.Context, executor DBExecutor, salonID int64) ([]domain.Employee, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"name",
		"created_at",
	).
		From("employees").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getEmployees - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getEmployees - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		var e domain.Employee
		var createdAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.SalonID, &e.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: getEmployees - scan row: %v", ErrScanRow, err)
		}
		e.CreatedAt = createdAt.Time
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getEmployees - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}

// getServices получает все услуги салона
func (r *Repository) getServices(ctx context.Context, executor DBExecutor, salonID int64) ([]domain.Service, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"category_id",
		"name",
		"price",
		"duration",
		"created_at",
	).
		From("services").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		var createdAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.SalonID, &s.CategoryID, &s.Name, &s.Price, &s.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: getServices - scan row: %v", ErrScanRow, err)
		}
		s.CreatedAt = createdAt.Time
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
