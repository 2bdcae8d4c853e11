package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	"github.com/carserviceagency/CSA-AppointmentService/internal/infra/cache"
	appointmentRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/appointment"
	"github.com/carserviceagency/CSA-AppointmentService/internal/service/appointments/models"
)

type fakeAppointmentRepo struct {
	getByIDFn           func(ctx context.Context, id int64) (*domain.Appointment, error)
	getByOperatorIDFn   func(ctx context.Context, operatorID string) ([]*domain.Appointment, error)
	getByCustomerNameFn func(ctx context.Context, customerName string) ([]*domain.Appointment, error)
	deleteFn            func(ctx context.Context, id int64) error
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeAppointmentRepo) GetByOperatorID(ctx context.Context, operatorID string) ([]*domain.Appointment, error) {
	if f.getByOperatorIDFn == nil {
		panic("GetByOperatorID not configured")
	}
	return f.getByOperatorIDFn(ctx, operatorID)
}

func (f *fakeAppointmentRepo) GetByCustomerName(ctx context.Context, customerName string) ([]*domain.Appointment, error) {
	if f.getByCustomerNameFn == nil {
		panic("GetByCustomerName not configured")
	}
	return f.getByCustomerNameFn(ctx, customerName)
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn == nil {
		panic("Delete not configured")
	}
	return f.deleteFn(ctx, id)
}

type fakeOperatorRepo struct {
	getByIDFn                func(ctx context.Context, id string) (*domain.Operator, error)
	getAllFn                 func(ctx context.Context) ([]*domain.Operator, error)
	adjustAppointmentCountFn func(ctx context.Context, id string, delta int) error
}

func (f *fakeOperatorRepo) GetByID(ctx context.Context, id string) (*domain.Operator, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeOperatorRepo) GetAll(ctx context.Context) ([]*domain.Operator, error) {
	if f.getAllFn == nil {
		panic("GetAll not configured")
	}
	return f.getAllFn(ctx)
}

func (f *fakeOperatorRepo) AdjustAppointmentCount(ctx context.Context, id string, delta int) error {
	if f.adjustAppointmentCountFn == nil {
		panic("AdjustAppointmentCount not configured")
	}
	return f.adjustAppointmentCountFn(ctx, id, delta)
}

// fakeCache кэш в памяти с той же JSON семантикой, что и настоящий
type fakeCache struct {
	data        map[string][]byte
	deletedKeys []string
	getErr      error
	deleteErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	if f.getErr != nil {
		return f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for _, key := range keys {
		delete(f.data, key)
	}
	f.deletedKeys = append(f.deletedKeys, keys...)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func appointmentFixture() *domain.Appointment {
	return &domain.Appointment{
		ID:           42,
		CustomerName: "Ivan Petrov",
		Date:         testDate,
		StartTime:    "10:00",
		EndTime:      "11:00",
		OperatorID:   "OP0001",
	}
}

func TestGetByID_CacheMissThenHit(t *testing.T) {
	repoCalls := 0
	apptRepo := &fakeAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			repoCalls++
			return appointmentFixture(), nil
		},
	}
	opRepo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return &domain.Operator{ID: "OP0001", Name: "Alice"}, nil
		},
	}
	cacheFake := newFakeCache()

	svc := NewService(apptRepo, opRepo, cacheFake, &fakeTxManager{}, nopLogger{})

	first, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Alice", first.OperatorName)
	assert.Equal(t, 1, repoCalls)

	// Повторное чтение идёт из кэша, хранилище не трогается
	second, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repoCalls)
}

func TestGetByID_NotFound(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			return nil, appointmentRepo.ErrAppointmentNotFound
		},
	}

	svc := NewService(apptRepo, &fakeOperatorRepo{}, newFakeCache(), &fakeTxManager{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_CacheUnavailableFallsThrough(t *testing.T) {
	// Недоступный кэш не роняет чтение
	apptRepo := &fakeAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			return appointmentFixture(), nil
		},
	}
	opRepo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return &domain.Operator{ID: "OP0001", Name: "Alice"}, nil
		},
	}
	cacheFake := newFakeCache()
	cacheFake.getErr = errors.New("redis down")

	svc := NewService(apptRepo, opRepo, cacheFake, &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestGetCustomerAppointments_EmptyListIsValid(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		getByCustomerNameFn: func(ctx context.Context, customerName string) ([]*domain.Appointment, error) {
			return nil, nil
		},
	}
	opRepo := &fakeOperatorRepo{
		getAllFn: func(ctx context.Context) ([]*domain.Operator, error) {
			return nil, nil
		},
	}

	svc := NewService(apptRepo, opRepo, newFakeCache(), &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetCustomerAppointments(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Empty(t, resp.Appointments)
}

func TestGetCustomerAppointments_EmptyName(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, &fakeOperatorRepo{}, newFakeCache(), &fakeTxManager{}, nopLogger{})

	_, err := svc.GetCustomerAppointments(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOperatorSummaries(t *testing.T) {
	opRepo := &fakeOperatorRepo{
		getAllFn: func(ctx context.Context) ([]*domain.Operator, error) {
			return []*domain.Operator{
				{ID: "OP0001", Name: "Alice", AppointmentCount: 1},
				{ID: "OP0002", Name: "Bob"},
			}, nil
		},
	}
	apptRepo := &fakeAppointmentRepo{
		getByOperatorIDFn: func(ctx context.Context, operatorID string) ([]*domain.Appointment, error) {
			if operatorID == "OP0001" {
				return []*domain.Appointment{appointmentFixture()}, nil
			}
			return nil, nil
		},
	}
	cacheFake := newFakeCache()

	svc := NewService(apptRepo, opRepo, cacheFake, &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetOperatorSummaries(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Operators, 2)
	assert.Equal(t, 1, resp.Operators[0].NoOfAppointments)
	assert.Equal(t, "Alice", resp.Operators[0].OperatorName)
	assert.Equal(t, 0, resp.Operators[1].NoOfAppointments)

	// Агрегат лёг в кэш
	var cached models.OperatorSummariesResponse
	require.NoError(t, cacheFake.Get(context.Background(), cache.OperatorSummariesKey, &cached))
	assert.Len(t, cached.Operators, 2)
}

func TestCancel_DeletesAndEvicts(t *testing.T) {
	var deletedID int64
	var counterDelta int

	apptRepo := &fakeAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			return appointmentFixture(), nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}
	opRepo := &fakeOperatorRepo{
		adjustAppointmentCountFn: func(ctx context.Context, id string, delta int) error {
			counterDelta = delta
			return nil
		},
	}
	cacheFake := newFakeCache()

	svc := NewService(apptRepo, opRepo, cacheFake, &fakeTxManager{}, nopLogger{})

	require.NoError(t, svc.Cancel(context.Background(), 42))

	assert.Equal(t, int64(42), deletedID)
	assert.Equal(t, -1, counterDelta)
	assert.Contains(t, cacheFake.deletedKeys, "appointment:42")
	assert.Contains(t, cacheFake.deletedKeys, "customer:Ivan Petrov")
	assert.Contains(t, cacheFake.deletedKeys, "operator-summaries")
}

func TestCancel_NotFound(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			return nil, appointmentRepo.ErrAppointmentNotFound
		},
	}

	svc := NewService(apptRepo, &fakeOperatorRepo{}, newFakeCache(), &fakeTxManager{}, nopLogger{})

	err := svc.Cancel(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_EvictionFailureIsAnError(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Appointment, error) {
			return appointmentFixture(), nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	opRepo := &fakeOperatorRepo{
		adjustAppointmentCountFn: func(ctx context.Context, id string, delta int) error {
			return nil
		},
	}
	cacheFake := newFakeCache()
	cacheFake.deleteErr = errors.New("redis down")

	svc := NewService(apptRepo, opRepo, cacheFake, &fakeTxManager{}, nopLogger{})

	err := svc.Cancel(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInternal)
}
