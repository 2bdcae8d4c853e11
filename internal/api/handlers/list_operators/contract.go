package list_operators

import (
	"context"

	"github.com/carserviceagency/CSA-AppointmentService/internal/service/operators/models"
)

type OperatorsService interface {
	GetAll(ctx context.Context) (*models.OperatorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
