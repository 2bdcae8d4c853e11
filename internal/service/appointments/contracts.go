package appointments

import (
	"context"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByOperatorID(ctx context.Context, operatorID string) ([]*domain.Appointment, error)
	GetByCustomerName(ctx context.Context, customerName string) ([]*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// OperatorRepository интерфейс репозитория операторов
type OperatorRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Operator, error)
	GetAll(ctx context.Context) ([]*domain.Operator, error)
	AdjustAppointmentCount(ctx context.Context, id string, delta int) error
}

// ResponseCache интерфейс кэша ответов
type ResponseCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
