package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

func TestAppointmentEndTime(t *testing.T) {
	end, err := AppointmentEndTime("10:00")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), end)

	end, err = AppointmentEndTime("17:30")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("18:30"), end)

	_, err = AppointmentEndTime("23:30")
	assert.Error(t, err)
}

func TestAppointment_OccupiesSlot(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	appt := &Appointment{
		Date:      date,
		StartTime: "10:00",
	}

	assert.True(t, appt.OccupiesSlot(date, "10:00"))
	assert.False(t, appt.OccupiesSlot(date, "11:00"))
	assert.False(t, appt.OccupiesSlot(date.AddDate(0, 0, 1), "10:00"))

	// Время суток у даты не влияет на сравнение
	sameDay := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)
	assert.True(t, appt.OccupiesSlot(sameDay, "10:00"))
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	b := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)
	c := time.Date(2026, 9, 16, 9, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, c))
}
