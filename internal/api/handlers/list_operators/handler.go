package list_operators

import (
	"net/http"

	"github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers"
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

// Handle GET /service/operator/v1/
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logger.Error("GET /service/operator/v1/ - Failed to list operators: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /service/operator/v1/ - Fetched %d operators", len(result.Operators))
	handlers.RespondJSON(w, http.StatusOK, result)
}
