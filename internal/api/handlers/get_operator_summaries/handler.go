package get_operator_summaries

import (
	"net/http"

	"github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /appointment/v1/operators
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetOperatorSummaries(r.Context())
	if err != nil {
		h.logger.Error("GET /appointment/v1/operators - Failed to build summaries: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointment/v1/operators - Fetched summaries for %d operators", len(result.Operators))
	handlers.RespondJSON(w, http.StatusOK, result)
}
