package delete_operator

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers"
	"github.com/carserviceagency/CSA-AppointmentService/internal/service/operators"
)

const (
	msgOperatorNotFound        = "оператор не найден"
	msgOperatorHasAppointments = "у оператора есть активные записи, удаление невозможно"
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

// Handle DELETE /service/operator/v1/{operatorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	operatorID := vars["operatorId"]

	if err := h.service.Delete(r.Context(), operatorID); err != nil {
		switch {
		case errors.Is(err, operators.ErrOperatorNotFound):
			h.logger.Warn("DELETE /service/operator/v1/%s - Operator not found", operatorID)
			handlers.RespondNotFound(w, msgOperatorNotFound)

		case errors.Is(err, operators.ErrOperatorHasAppointments):
			h.logger.Warn("DELETE /service/operator/v1/%s - Operator has appointments", operatorID)
			handlers.RespondConflict(w, msgOperatorHasAppointments)

		default:
			h.logger.Error("DELETE /service/operator/v1/%s - Failed to delete operator: error=%v", operatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /service/operator/v1/%s - Operator deleted", operatorID)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{
		Message: fmt.Sprintf("оператор %s успешно удалён", operatorID),
	})
}
