package check_availability

import (
	"fmt"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

// buildSlots строит часовую сетку рабочего дня [dayStart, dayEnd)
// и помечает занятые слоты по записям оператора на эту дату
func buildSlots(
	dayStart types.TimeString,
	dayEnd types.TimeString,
	appointments []*domain.Appointment,
) ([]Slot, error) {
	if err := dayStart.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid day start: %v", ErrInternal, err)
	}
	if err := dayEnd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid day end: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0)

	current := dayStart
	for current.IsBefore(dayEnd) {
		next, err := current.AddMinutes(domain.AppointmentDurationMinutes)
		if err != nil {
			// Сетка уперлась в полночь, дальше слотов нет
			break
		}
		if next.IsAfter(dayEnd) {
			break
		}

		slots = append(slots, Slot{
			StartTime: current,
			EndTime:   next,
			Available: !slotTaken(appointments, current),
		})

		current = next
	}

	return slots, nil
}

// slotTaken проверяет, есть ли запись, занимающая слот с данным началом
func slotTaken(appointments []*domain.Appointment, startTime types.TimeString) bool {
	for _, appt := range appointments {
		if appt.StartTime.Equal(startTime) {
			return true
		}
	}
	return false
}
