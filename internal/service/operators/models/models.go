package models

import "github.com/carserviceagency/CSA-AppointmentService/internal/domain"

// Response модели

// OperatorResponse ответ с данными оператора
type OperatorResponse struct {
	OperatorID           string `json:"operatorId"`
	OperatorName         string `json:"operatorName"`
	NumberOfAppointments int    `json:"numberOfAppointments"`
}

// OperatorListResponse ответ со списком операторов
type OperatorListResponse struct {
	Operators []OperatorResponse `json:"operators"`
}

// Методы конвертации

// FromDomainOperator конвертирует domain модель в DTO
func FromDomainOperator(op *domain.Operator) *OperatorResponse {
	if op == nil {
		return nil
	}

	return &OperatorResponse{
		OperatorID:           op.ID,
		OperatorName:         op.Name,
		NumberOfAppointments: op.AppointmentCount,
	}
}

// FromDomainOperatorList конвертирует список domain моделей в DTO
func FromDomainOperatorList(operators []*domain.Operator) *OperatorListResponse {
	resp := &OperatorListResponse{
		Operators: make([]OperatorResponse, 0, len(operators)),
	}

	for _, op := range operators {
		if opResp := FromDomainOperator(op); opResp != nil {
			resp.Operators = append(resp.Operators, *opResp)
		}
	}

	return resp
}
