package get_operator

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers"
	"github.com/carserviceagency/CSA-AppointmentService/internal/service/operators"
)

const msgOperatorNotFound = "оператор не найден"

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

// Handle GET /service/operator/v1/{operatorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	operatorID := vars["operatorId"]

	result, err := h.service.GetByID(r.Context(), operatorID)
	if err != nil {
		switch {
		case errors.Is(err, operators.ErrOperatorNotFound):
			h.logger.Warn("GET /service/operator/v1/%s - Operator not found", operatorID)
			handlers.RespondNotFound(w, msgOperatorNotFound)

		default:
			h.logger.Error("GET /service/operator/v1/%s - Failed to get operator: error=%v", operatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /service/operator/v1/%s - Operator fetched", operatorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
