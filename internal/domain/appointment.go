package domain

import (
	"time"

	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

// Appointment represents a fixed one-hour service appointment
type Appointment struct {
	ID           int64
	CustomerName string
	Date         time.Time // calendar date, time part is always midnight
	StartTime    types.TimeString
	EndTime      types.TimeString // always StartTime + AppointmentDurationMinutes
	OperatorID   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the appointment occupies the given slot.
// A slot is a (date, startTime) pair within one operator's calendar.
func (a *Appointment) OccupiesSlot(date time.Time, startTime types.TimeString) bool {
	return SameDate(a.Date, date) && a.StartTime.Equal(startTime)
}

// SameDate compares two timestamps by calendar date only
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// AppointmentEndTime derives the end time of a slot starting at startTime
func AppointmentEndTime(startTime types.TimeString) (types.TimeString, error) {
	return startTime.AddMinutes(AppointmentDurationMinutes)
}
