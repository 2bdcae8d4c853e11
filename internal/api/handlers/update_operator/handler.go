package update_operator

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers"
	"github.com/carserviceagency/CSA-AppointmentService/internal/service/operators"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidName        = "некорректное имя оператора"
	msgOperatorNotFound   = "оператор не найден"
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

// Handle PUT /service/operator/v1/{operatorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	operatorID := vars["operatorId"]

	var req UpdateOperatorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /service/operator/v1/%s - Invalid request body: %v", operatorID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateName(r.Context(), operatorID, req.OperatorName)
	if err != nil {
		switch {
		case errors.Is(err, operators.ErrOperatorNotFound):
			h.logger.Warn("PUT /service/operator/v1/%s - Operator not found", operatorID)
			handlers.RespondNotFound(w, msgOperatorNotFound)

		case errors.Is(err, operators.ErrInvalidInput):
			h.logger.Warn("PUT /service/operator/v1/%s - Invalid name: %v", operatorID, err)
			handlers.RespondBadRequest(w, msgInvalidName)

		default:
			h.logger.Error("PUT /service/operator/v1/%s - Failed to update operator: error=%v", operatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /service/operator/v1/%s - Operator updated", operatorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
