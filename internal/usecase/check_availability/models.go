package check_availability

import (
	"time"

	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

// Request модель запроса доступности расписания оператора на дату
type Request struct {
	OperatorID string    // ID оператора (например, "OP0001")
	Date       time.Time // Дата, на которую проверяется расписание
}

// Slot один часовой слот рабочего дня
type Slot struct {
	StartTime types.TimeString // Начало слота
	EndTime   types.TimeString // Конец слота (начало + час)
	Available bool             // Свободен ли слот
}

// Response модель ответа с расписанием оператора на дату
type Response struct {
	OperatorID   string    // ID оператора
	OperatorName string    // Имя оператора
	Date         time.Time // Дата
	Slots        []Slot    // Часовые слоты рабочего дня по порядку
}
