package get_customer_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers"
	"github.com/carserviceagency/CSA-AppointmentService/internal/service/appointments"
)

const msgInvalidCustomerName = "имя клиента не указано"

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

// Handle GET /appointment/v1/all/{name}
// Пустой список записей - валидный ответ, существование клиента не проверяется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerName := vars["name"]

	result, err := h.service.GetCustomerAppointments(r.Context(), customerName)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointment/v1/all/{name} - Invalid customer name: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCustomerName)

		default:
			h.logger.Error("GET /appointment/v1/all/%s - Failed to get appointments: error=%v", customerName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointment/v1/all/%s - Fetched %d appointments", customerName, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
