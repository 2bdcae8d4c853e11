package domain

import "time"

// Operator represents a service operator that owns a calendar of appointment slots
type Operator struct {
	ID               string // "OP" + 4-digit zero-padded sequence, e.g. "OP0001"
	Name             string
	AppointmentCount int // denormalized, maintained on book/cancel

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAppointments returns true if any appointments still reference the operator
func (o *Operator) HasAppointments() bool {
	return o.AppointmentCount > 0
}
