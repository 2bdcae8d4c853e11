package reschedule_appointment

import (
	"time"

	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

// Request модель запроса на перенос записи
// Оператор записи при переносе не меняется, двигаются только
// имя клиента, дата и время
type Request struct {
	AppointmentID int64            // ID переносимой записи
	CustomerName  string           // Имя клиента
	Date          time.Time        // Новая дата записи
	StartTime     types.TimeString // Новое время начала слота
}

// Response модель ответа с обновлённой записью
type Response struct {
	ID           int64            // ID записи
	CustomerName string           // Имя клиента
	Date         time.Time        // Дата записи
	StartTime    types.TimeString // Время начала
	EndTime      types.TimeString // Время окончания (начало + час)
	OperatorID   string           // ID оператора
	OperatorName string           // Имя оператора (денормализовано)
	CreatedAt    time.Time        // Время создания
	UpdatedAt    time.Time        // Время обновления
}
