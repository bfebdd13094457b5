package get_slot_grid

import (
	"time"

	"github.com/vetmogee/schedula/internal/domain"
)

// Request модель запроса сетки слотов
type Request struct {
	SalonID    int64     // ID салона
	EmployeeID int64     // ID сотрудника
	Date       time.Time // Дата, на которую строится сетка
}

// Response модель ответа: полная сетка дня с признаком доступности
type Response struct {
	Date       time.Time // Дата запроса
	SalonID    int64     // ID салона
	EmployeeID int64     // ID сотрудника
	Slots      []domain.GridSlot
}
