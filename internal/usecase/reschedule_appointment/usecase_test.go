package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	appointmentRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/appointment"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	getByIDFn              func(ctx context.Context, id int64) (*domain.Appointment, error)
	getByOperatorAndDateFn func(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error)
	updateFn               func(ctx context.Context, appt *domain.Appointment) error
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeAppointmentRepo) GetByOperatorAndDate(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error) {
	if f.getByOperatorAndDateFn == nil {
		panic("GetByOperatorAndDate not configured")
	}
	return f.getByOperatorAndDateFn(ctx, operatorID, date)
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, appt *domain.Appointment) error {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, appt)
}

type fakeOperatorRepo struct {
	getByIDFn func(ctx context.Context, id string) (*domain.Operator, error)
}

func (f *fakeOperatorRepo) GetByID(ctx context.Context, id string) (*domain.Operator, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

type fakeCache struct {
	deletedKeys []string
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.deletedKeys = append(f.deletedKeys, keys...)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func existingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:           42,
		CustomerName: "Ivan Petrov",
		Date:         testDate,
		StartTime:    "10:00",
		EndTime:      "11:00",
		OperatorID:   "OP0001",
	}
}

func operatorFixture() *domain.Operator {
	return &domain.Operator{ID: "OP0001", Name: "Alice"}
}

func TestExecute_Success(t *testing.T) {
	var updated *domain.Appointment

	apptRepo := &fakeAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			return existingAppointment(), nil
		},
		getByOperatorAndDateFn: func(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error) {
			return []*domain.Appointment{existingAppointment()}, nil
		},
		updateFn: func(ctx context.Context, appt *domain.Appointment) error {
			updated = appt
			return nil
		},
	}
	opRepo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return operatorFixture(), nil
		},
	}
	cacheFake := &fakeCache{}

	uc := NewUseCase(apptRepo, opRepo, cacheFake, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		CustomerName:  "Ivan Petrov",
		Date:          testDate,
		StartTime:     "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("14:00"), updated.StartTime)
	assert.Equal(t, types.TimeString("15:00"), updated.EndTime)
	assert.Equal(t, "OP0001", resp.OperatorID)
	assert.Equal(t, "Alice", resp.OperatorName)
	assert.Contains(t, cacheFake.deletedKeys, "appointment:42")
	assert.Contains(t, cacheFake.deletedKeys, "operator-summaries")
	assert.Contains(t, cacheFake.deletedKeys, "customer:Ivan Petrov")
}

func TestExecute_SlotConflictPropagates(t *testing.T) {
	// Целевой слот занят другой записью: ошибка доходит до клиента
	other := &domain.Appointment{ID: 7, StartTime: "14:00", OperatorID: "OP0001", Date: testDate}

	apptRepo := &fakeAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			return existingAppointment(), nil
		},
		getByOperatorAndDateFn: func(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error) {
			return []*domain.Appointment{existingAppointment(), other}, nil
		},
		updateFn: func(ctx context.Context, appt *domain.Appointment) error {
			t.Fatal("Update must not be called on conflict")
			return nil
		},
	}
	opRepo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return operatorFixture(), nil
		},
	}

	uc := NewUseCase(apptRepo, opRepo, &fakeCache{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		CustomerName:  "Ivan Petrov",
		Date:          testDate,
		StartTime:     "14:00",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_OwnSlotIsNotAConflict(t *testing.T) {
	// Перенос на собственный слот (смена только имени клиента) разрешён
	apptRepo := &fakeAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			return existingAppointment(), nil
		},
		getByOperatorAndDateFn: func(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error) {
			return []*domain.Appointment{existingAppointment()}, nil
		},
		updateFn: func(ctx context.Context, appt *domain.Appointment) error {
			return nil
		},
	}
	opRepo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return operatorFixture(), nil
		},
	}
	cacheFake := &fakeCache{}

	uc := NewUseCase(apptRepo, opRepo, cacheFake, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		CustomerName:  "Petr Ivanov",
		Date:          testDate,
		StartTime:     "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Petr Ivanov", resp.CustomerName)

	// Инвалидируются списки и старого, и нового клиента
	assert.Contains(t, cacheFake.deletedKeys, "customer:Petr Ivanov")
	assert.Contains(t, cacheFake.deletedKeys, "customer:Ivan Petrov")
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			return nil, appointmentRepo.ErrAppointmentNotFound
		},
	}

	uc := NewUseCase(apptRepo, &fakeOperatorRepo{}, &fakeCache{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 99,
		CustomerName:  "Ivan Petrov",
		Date:          testDate,
		StartTime:     "14:00",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakeOperatorRepo{}, &fakeCache{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 0,
		CustomerName:  "Ivan Petrov",
		Date:          testDate,
		StartTime:     "14:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		CustomerName:  "Ivan Petrov",
		Date:          testDate,
		StartTime:     "bad",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
