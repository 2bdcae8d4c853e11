package book_appointment

import (
	"time"

	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

// Request модель запроса на бронирование записи
type Request struct {
	CustomerName string           // Имя клиента
	Date         time.Time        // Дата записи (без времени)
	StartTime    types.TimeString // Время начала слота (например, "10:00")
	OperatorID   string           // ID оператора (например, "OP0001")
}

// Response модель ответа с созданной записью
type Response struct {
	ID           int64            // ID созданной записи
	CustomerName string           // Имя клиента
	Date         time.Time        // Дата записи
	StartTime    types.TimeString // Время начала
	EndTime      types.TimeString // Время окончания (начало + час)
	OperatorID   string           // ID оператора
	OperatorName string           // Имя оператора (денормализовано)
	CreatedAt    time.Time        // Время создания
	UpdatedAt    time.Time        // Время обновления
}
