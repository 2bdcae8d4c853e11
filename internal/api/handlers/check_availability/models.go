package check_availability

import (
	"time"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	checkAvailability "github.com/carserviceagency/CSA-AppointmentService/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	OperatorID string `json:"operatorId"`
	Date       string `json:"date"` // "2026-09-15"
}

// SlotResponse один слот в расписании оператора
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	OperatorID   string         `json:"operatorId"`
	OperatorName string         `json:"operatorName"`
	Date         string         `json:"date"`
	Slots        []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		OperatorID: r.OperatorID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		OperatorID:   resp.OperatorID,
		OperatorName: resp.OperatorName,
		Date:         resp.Date.Format(domain.DateFormat),
		Slots:        make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Available: slot.Available,
		})
	}

	return out
}
