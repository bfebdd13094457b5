package get_available_slots

import (
	"time"

	"github.com/vetmogee/schedula/internal/domain"
	"github.com/vetmogee/schedula/pkg/types"
)

// generateSlots генерирует валидные времена начала с шагом 15 минут.
//
// Слот валиден, если:
//   - начало + требуемая длительность не выходит за закрытие;
//   - начало не в прошлом (ограничение действует только для сегодняшней даты);
//   - дата в пределах скользящего горизонта в 1 календарный месяц;
//   - интервал [начало, начало+длительность) не пересекается ни с одним
//     бронированием сотрудника (правило пересечения - в domain.Overlaps).
//
// Порядок генерации даёт возрастание времён, дополнительной сортировки нет.
func generateSlots(
	openMinutes, closeMinutes int,
	durationMinutes int,
	date time.Time,
	now time.Time,
	bookings []*domain.Booking,
) []types.TimeString {
	slots := make([]types.TimeString, 0)

	dayStart, _ := domain.DayBounds(date)

	// Дата в прошлом - слотов нет
	today, _ := domain.DayBounds(now)
	if dayStart.Before(today) {
		return slots
	}

	// Дата за горизонтом бронирования - слотов нет
	if dayStart.After(domain.MaxBookingInstant(now)) {
		return slots
	}

	isToday := domain.SameDay(date, now)

	for startMin := openMinutes; startMin+durationMinutes <= closeMinutes; startMin += domain.AvailabilityStepMinutes {
		slotStart := dayStart.Add(time.Duration(startMin) * time.Minute)
		slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

		if isToday && slotStart.Before(now) {
			continue
		}

		if taken, _ := domain.FindConflict(bookings, slotStart, slotEnd); taken {
			continue
		}

		ts, err := types.FromMinutes(startMin)
		if err != nil {
			// Окно в пределах суток, сюда попасть нельзя
			continue
		}
		slots = append(slots, ts)
	}

	return slots
}
