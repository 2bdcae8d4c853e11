package create_operator

import (
	"context"

	"github.com/carserviceagency/CSA-AppointmentService/internal/service/operators/models"
)

type OperatorsService interface {
	Create(ctx context.Context, name string) (*models.OperatorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
