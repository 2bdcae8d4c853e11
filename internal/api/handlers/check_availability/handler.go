package check_availability

import (
	"errors"
	"net/http"

	"github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers"
	checkAvailability "github.com/carserviceagency/CSA-AppointmentService/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgOperatorNotFound   = "оператор не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /appointment/v1/check-availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointment/v1/check-availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointment/v1/check-availability - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrOperatorNotFound):
			h.logger.Warn("POST /appointment/v1/check-availability - Operator not found: operator=%s", req.OperatorID)
			handlers.RespondNotFound(w, msgOperatorNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /appointment/v1/check-availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointment/v1/check-availability - Failed: operator=%s, error=%v",
				req.OperatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointment/v1/check-availability - Built %d slots for operator=%s",
		len(result.Slots), result.OperatorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
