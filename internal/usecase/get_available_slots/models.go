package get_available_slots

import (
	"time"

	"github.com/vetmogee/schedula/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID    int64     // ID салона
	EmployeeID int64     // ID сотрудника
	ServiceIDs []int64   // ID выбранных услуг (определяют требуемую длительность)
	Date       time.Time // Дата, на которую запрашиваются слоты
}

// Response модель ответа со списком доступных времён начала
type Response struct {
	Date            time.Time          // Дата запроса
	SalonID         int64              // ID салона
	EmployeeID      int64              // ID сотрудника
	DurationMinutes int                // Суммарная длительность выбранных услуг
	Slots           []types.TimeString // Валидные времена начала по возрастанию
}
