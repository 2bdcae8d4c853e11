package reschedule_appointment

import (
	"context"
	"time"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByOperatorAndDate(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error)
	Update(ctx context.Context, appointment *domain.Appointment) error
}

// OperatorRepository интерфейс репозитория операторов
type OperatorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Operator, error)
}

// ResponseCache интерфейс кэша ответов
type ResponseCache interface {
	Delete(ctx context.Context, keys ...string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
