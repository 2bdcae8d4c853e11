package operators

import "errors"

var (
	// ErrOperatorNotFound возвращается, когда оператор не найден
	ErrOperatorNotFound = errors.New("operator not found")

	// ErrOperatorHasAppointments возвращается при попытке удалить оператора,
	// на которого ещё ссылаются записи
	ErrOperatorHasAppointments = errors.New("operator has active appointments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("operators service: internal error")
)
