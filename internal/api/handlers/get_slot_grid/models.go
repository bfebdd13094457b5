package get_slot_grid

import (
	"github.com/vetmogee/schedula/internal/domain"
	getSlotGrid "github.com/vetmogee/schedula/internal/usecase/get_slot_grid"
)

// SlotGridResponse HTTP response model
type SlotGridResponse struct {
	Date       string     `json:"date"`
	SalonID    int64      `json:"salonId"`
	EmployeeID int64      `json:"employeeId"`
	Slots      []GridSlot `json:"slots"`
}

// GridSlot ячейка сетки с признаком доступности
type GridSlot struct {
	StartTime string `json:"startTime"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotGrid.Response) *SlotGridResponse {
	slots := make([]GridSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = GridSlot{
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
		}
	}

	return &SlotGridResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		SalonID:    resp.SalonID,
		EmployeeID: resp.EmployeeID,
		Slots:      slots,
	}
}
