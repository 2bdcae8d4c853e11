package check_availability

import (
	"context"
	"time"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByOperatorAndDate(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error)
}

// OperatorRepository интерфейс репозитория операторов
type OperatorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Operator, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
