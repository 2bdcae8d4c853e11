package reschedule_appointment

import (
	"time"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	rescheduleAppointment "github.com/carserviceagency/CSA-AppointmentService/internal/usecase/reschedule_appointment"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
// operatorId принимается для совместимости формата, но оператор записи
// при переносе не меняется
type RescheduleAppointmentRequest struct {
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`      // "2026-09-15"
	StartTime    string `json:"startTime"` // "10:00"
	OperatorID   string `json:"operatorId,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	CustomerName  string `json:"customerName"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	OperatorID    string `json:"operatorId"`
	OperatorName  string `json:"operatorName"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		CustomerName:  r.CustomerName,
		Date:          date,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		AppointmentID: resp.ID,
		CustomerName:  resp.CustomerName,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		OperatorID:    resp.OperatorID,
		OperatorName:  resp.OperatorName,
	}
}
