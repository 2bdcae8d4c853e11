package book_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	appointmentRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/appointment"
	operatorRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/operator"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	createFn               func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	getByOperatorAndDateFn func(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error)
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, appt)
}

func (f *fakeAppointmentRepo) GetByOperatorAndDate(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error) {
	if f.getByOperatorAndDateFn == nil {
		panic("GetByOperatorAndDate not configured")
	}
	return f.getByOperatorAndDateFn(ctx, operatorID, date)
}

type fakeOperatorRepo struct {
	getByIDFn                func(ctx context.Context, id string) (*domain.Operator, error)
	adjustAppointmentCountFn func(ctx context.Context, id string, delta int) error
}

func (f *fakeOperatorRepo) GetByID(ctx context.Context, id string) (*domain.Operator, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeOperatorRepo) AdjustAppointmentCount(ctx context.Context, id string, delta int) error {
	if f.adjustAppointmentCountFn == nil {
		panic("AdjustAppointmentCount not configured")
	}
	return f.adjustAppointmentCountFn(ctx, id, delta)
}

type fakeCache struct {
	deletedKeys []string
	deleteErr   error
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
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

func validRequest() *Request {
	return &Request{
		CustomerName: "Ivan Petrov",
		Date:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("10:00"),
		OperatorID:   "OP0001",
	}
}

func operatorFixture() *domain.Operator {
	return &domain.Operator{ID: "OP0001", Name: "Alice", AppointmentCount: 2}
}

func TestExecute_Success(t *testing.T) {
	var created *domain.Appointment
	var counterDelta int

	apptRepo := &fakeAppointmentRepo{
		getByOperatorAndDateFn: func(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
			created = appt
			out := *appt
			out.ID = 42
			return &out, nil
		},
	}
	opRepo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return operatorFixture(), nil
		},
		adjustAppointmentCountFn: func(ctx context.Context, id string, delta int) error {
			counterDelta = delta
			return nil
		},
	}
	cacheFake := &fakeCache{}

	uc := NewUseCase(apptRepo, opRepo, cacheFake, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "Alice", resp.OperatorName)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, types.TimeString("11:00"), created.EndTime)
	assert.Equal(t, 1, counterDelta)
	assert.Contains(t, cacheFake.deletedKeys, "customer:Ivan Petrov")
	assert.Contains(t, cacheFake.deletedKeys, "operator-summaries")
}

func TestExecute_SlotConflict(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		getByOperatorAndDateFn: func(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error) {
			return []*domain.Appointment{
				{ID: 7, StartTime: "10:00", OperatorID: "OP0001"},
			}, nil
		},
		createFn: func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
			t.Fatal("Create must not be called on conflict")
			return nil, nil
		},
	}
	opRepo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return operatorFixture(), nil
		},
	}

	uc := NewUseCase(apptRepo, opRepo, &fakeCache{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_OperatorNotFound(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{}
	opRepo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return nil, operatorRepo.ErrOperatorNotFound
		},
	}

	uc := NewUseCase(apptRepo, opRepo, &fakeCache{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOperatorNotFound)
}

func TestExecute_UniqueViolationMapsToSlotConflict(t *testing.T) {
	// Проверка слота прошла, но вставка упёрлась в уникальный индекс:
	// так выглядит гонка двух бронирований на пониженном уровне изоляции
	apptRepo := &fakeAppointmentRepo{
		getByOperatorAndDateFn: func(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
			return nil, appointmentRepo.ErrSlotTaken
		},
	}
	opRepo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return operatorFixture(), nil
		},
	}

	uc := NewUseCase(apptRepo, opRepo, &fakeCache{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakeOperatorRepo{}, &fakeCache{}, &fakeTxManager{}, nopLogger{})

	req := validRequest()
	req.CustomerName = "  "
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.OperatorID = ""
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.StartTime = "25:99"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.StartTime = "23:30" // слот вышел бы за полночь
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CacheEvictionFailure(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		getByOperatorAndDateFn: func(ctx context.Context, operatorID string, date time.Time) ([]*domain.Appointment, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
			out := *appt
			out.ID = 1
			return &out, nil
		},
	}
	opRepo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return operatorFixture(), nil
		},
		adjustAppointmentCountFn: func(ctx context.Context, id string, delta int) error {
			return nil
		},
	}
	cacheFake := &fakeCache{deleteErr: errors.New("redis down")}

	uc := NewUseCase(apptRepo, opRepo, cacheFake, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
