package cache

import "fmt"

// Ключи кэша. Инвалидация при мутациях обязана использовать те же
// конструкторы ключей, что и читающая сторона.
const (
	appointmentKeyPrefix = "appointment:"
	customerKeyPrefix    = "customer:"

	// OperatorSummariesKey единственный агрегатный ключ сводки по операторам.
	// Любая мутация расписания любого оператора инвалидирует агрегат целиком.
	OperatorSummariesKey = "operator-summaries"
)

// AppointmentKey ключ кэша одной записи
func AppointmentKey(appointmentID int64) string {
	return fmt.Sprintf("%s%d", appointmentKeyPrefix, appointmentID)
}

// CustomerKey ключ кэша списка записей клиента
func CustomerKey(customerName string) string {
	return customerKeyPrefix + customerName
}
