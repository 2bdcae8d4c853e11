package get_operator_summaries

import (
	"context"

	"github.com/carserviceagency/CSA-AppointmentService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetOperatorSummaries(ctx context.Context) (*models.OperatorSummariesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
