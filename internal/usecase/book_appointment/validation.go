package book_appointment

import (
	"fmt"
	"strings"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.OperatorID) == "" {
		return fmt.Errorf("%w: operatorId is required", ErrInvalidInput)
	}

	return nil
}

// hasSlotConflict проверяет, занят ли слот в расписании оператора.
// Конфликтом считается точное совпадение времени начала: слоты часовые
// и выровнены по часу, поэтому интервального пересечения не бывает.
// excludeID исключает из проверки собственную запись при переносе.
func hasSlotConflict(appointments []*domain.Appointment, startTime types.TimeString, excludeID int64) bool {
	for _, appt := range appointments {
		if appt.ID == excludeID {
			continue
		}
		if appt.StartTime.Equal(startTime) {
			return true
		}
	}
	return false
}
