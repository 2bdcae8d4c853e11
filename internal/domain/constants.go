package domain

// Appointment slot constants
const (
	// AppointmentDurationMinutes фиксированная длительность записи: ровно один час
	AppointmentDurationMinutes = 60
)

// Operator identifier constants
const (
	OperatorIDPrefix = "OP"
	// OperatorIDFormat формат идентификатора: префикс + 4 цифры с ведущими нулями
	OperatorIDFormat = OperatorIDPrefix + "%04d"
)

// Business validation constants
const (
	MaxCustomerNameLength = 100
	MaxOperatorNameLength = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
