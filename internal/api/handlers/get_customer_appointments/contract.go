package get_customer_appointments

import (
	"context"

	"github.com/carserviceagency/CSA-AppointmentService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetCustomerAppointments(ctx context.Context, customerName string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
