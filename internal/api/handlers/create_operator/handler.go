package create_operator

import (
	"errors"
	"net/http"

	"github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers"
	"github.com/carserviceagency/CSA-AppointmentService/internal/service/operators"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidName        = "некорректное имя оператора"
)

type Handler struct {
	service OperatorsService
	logger  Logger
}

func NewHandler(service OperatorsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /service/operator/v1/create
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateOperatorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /service/operator/v1/create - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.OperatorName)
	if err != nil {
		switch {
		case errors.Is(err, operators.ErrInvalidInput):
			h.logger.Warn("POST /service/operator/v1/create - Invalid name: %v", err)
			handlers.RespondBadRequest(w, msgInvalidName)

		default:
			h.logger.Error("POST /service/operator/v1/create - Failed to create operator: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /service/operator/v1/create - Operator created: operator=%s", result.OperatorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
