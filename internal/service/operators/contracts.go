package operators

import (
	"context"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
)

// OperatorRepository интерфейс репозитория операторов
type OperatorRepository interface {
	Create(ctx context.Context, name string) (*domain.Operator, error)
	GetByID(ctx context.Context, id string) (*domain.Operator, error)
	GetAll(ctx context.Context) ([]*domain.Operator, error)
	UpdateName(ctx context.Context, id string, name string) error
	Delete(ctx context.Context, id string) error
}

// ResponseCache интерфейс кэша ответов
// Сервису операторов нужна только инвалидация агрегатной сводки
type ResponseCache interface {
	Delete(ctx context.Context, keys ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
