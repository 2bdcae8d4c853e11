package book_appointment

import "errors"

var (
	// ErrOperatorNotFound возвращается, когда оператор не найден
	ErrOperatorNotFound = errors.New("book_appointment: operator not found")

	// ErrSlotConflict возвращается, когда слот у оператора уже занят
	ErrSlotConflict = errors.New("book_appointment: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
