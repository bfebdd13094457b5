package get_available_slots

import (
	"strconv"
	"strings"
	"time"

	"github.com/vetmogee/schedula/internal/domain"
	getAvailableSlots "github.com/vetmogee/schedula/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	SalonID         int64    `json:"salonId"`
	EmployeeID      int64    `json:"employeeId"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"` // времена начала "HH:MM" по возрастанию
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		SalonID:         resp.SalonID,
		EmployeeID:      resp.EmployeeID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ParseDate парсит дату из query параметра
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(domain.DateFormat, dateStr)
}

// ParseServiceIDs разбирает список ID из query параметра "1,2,3"
func ParseServiceIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
