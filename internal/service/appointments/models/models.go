package models

import (
	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
)

// Response модели

// AppointmentResponse ответ с данными записи
// Имя и ID оператора денормализованы в ответ
type AppointmentResponse struct {
	ID           int64  `json:"appointmentId"`
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`      // "2024-06-01"
	StartTime    string `json:"startTime"` // "09:00"
	EndTime      string `json:"endTime"`   // "10:00"
	OperatorID   string `json:"operatorId"`
	OperatorName string `json:"operatorName"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// OperatorSummaryResponse сводка по одному оператору:
// его записи и их количество
type OperatorSummaryResponse struct {
	OperatorID       string                `json:"operatorId"`
	OperatorName     string                `json:"operatorName"`
	NoOfAppointments int                   `json:"noOfAppointments"`
	Appointments     []AppointmentResponse `json:"appointments"`
}

// OperatorSummariesResponse агрегат сводок по всем операторам
// Кэшируется целиком под одним ключом
type OperatorSummariesResponse struct {
	Operators []OperatorSummaryResponse `json:"operators"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment, operatorName string) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:           a.ID,
		CustomerName: a.CustomerName,
		Date:         a.Date.Format(domain.DateFormat),
		StartTime:    a.StartTime.String(),
		EndTime:      a.EndTime.String(),
		OperatorID:   a.OperatorID,
		OperatorName: operatorName,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
// operatorNames отображает operatorId -> имя для денормализации
func FromDomainAppointmentList(appointments []*domain.Appointment, operatorNames map[string]string) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt, operatorNames[appt.OperatorID]); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}
