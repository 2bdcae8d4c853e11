package book_appointment

import (
	"errors"
	"net/http"

	"github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers"
	bookAppointment "github.com/carserviceagency/CSA-AppointmentService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgOperatorNotFound   = "оператор не найден"
	msgSlotConflict       = "выбранный слот уже занят, выберите другое время"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /appointment/v1/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointment/v1/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointment/v1/book - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointment/v1/book - Slot conflict: operator=%s, date=%s, time=%s",
				req.OperatorID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, bookAppointment.ErrOperatorNotFound):
			h.logger.Warn("POST /appointment/v1/book - Operator not found: operator=%s", req.OperatorID)
			handlers.RespondNotFound(w, msgOperatorNotFound)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointment/v1/book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointment/v1/book - Failed to book appointment: operator=%s, error=%v",
				req.OperatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointment/v1/book - Appointment created: appointment_id=%d, operator=%s",
		result.ID, result.OperatorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
