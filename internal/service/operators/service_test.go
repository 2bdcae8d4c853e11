package operators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	operatorRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/operator"
)

type fakeOperatorRepo struct {
	createFn     func(ctx context.Context, name string) (*domain.Operator, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.Operator, error)
	getAllFn     func(ctx context.Context) ([]*domain.Operator, error)
	updateNameFn func(ctx context.Context, id string, name string) error
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeOperatorRepo) Create(ctx context.Context, name string) (*domain.Operator, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, name)
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

func (f *fakeOperatorRepo) UpdateName(ctx context.Context, id string, name string) error {
	if f.updateNameFn == nil {
		panic("UpdateName not configured")
	}
	return f.updateNameFn(ctx, id, name)
}

func (f *fakeOperatorRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn == nil {
		panic("Delete not configured")
	}
	return f.deleteFn(ctx, id)
}

type fakeCache struct {
	deletedKeys []string
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.deletedKeys = append(f.deletedKeys, keys...)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestCreate_TrimsNameAndEvictsSummaries(t *testing.T) {
	var createdName string
	repo := &fakeOperatorRepo{
		createFn: func(ctx context.Context, name string) (*domain.Operator, error) {
			createdName = name
			return &domain.Operator{ID: "OP0001", Name: name}, nil
		},
	}
	cacheFake := &fakeCache{}

	svc := NewService(repo, cacheFake, nopLogger{})

	resp, err := svc.Create(context.Background(), "  Alice  ")
	require.NoError(t, err)

	assert.Equal(t, "Alice", createdName)
	assert.Equal(t, "OP0001", resp.OperatorID)
	assert.Contains(t, cacheFake.deletedKeys, "operator-summaries")
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&fakeOperatorRepo{}, &fakeCache{}, nopLogger{})

	_, err := svc.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), strings.Repeat("x", domain.MaxOperatorNameLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return nil, operatorRepo.ErrOperatorNotFound
		},
	}

	svc := NewService(repo, &fakeCache{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), "OP9999")
	assert.ErrorIs(t, err, ErrOperatorNotFound)
}

func TestUpdateName_EvictsSummaries(t *testing.T) {
	repo := &fakeOperatorRepo{
		updateNameFn: func(ctx context.Context, id string, name string) error {
			return nil
		},
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return &domain.Operator{ID: id, Name: "Bob"}, nil
		},
	}
	cacheFake := &fakeCache{}

	svc := NewService(repo, cacheFake, nopLogger{})

	resp, err := svc.UpdateName(context.Background(), "OP0001", "Bob")
	require.NoError(t, err)

	assert.Equal(t, "Bob", resp.OperatorName)
	assert.Contains(t, cacheFake.deletedKeys, "operator-summaries")
}

func TestDelete_BlockedWhileAppointmentsExist(t *testing.T) {
	repo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return &domain.Operator{ID: id, Name: "Alice", AppointmentCount: 3}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			t.Fatal("Delete must not be called while appointments exist")
			return nil
		},
	}

	svc := NewService(repo, &fakeCache{}, nopLogger{})

	err := svc.Delete(context.Background(), "OP0001")
	assert.ErrorIs(t, err, ErrOperatorHasAppointments)
}

func TestDelete_Success(t *testing.T) {
	var deletedID string
	repo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return &domain.Operator{ID: id, Name: "Alice", AppointmentCount: 0}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	cacheFake := &fakeCache{}

	svc := NewService(repo, cacheFake, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), "OP0001"))
	assert.Equal(t, "OP0001", deletedID)
	assert.Contains(t, cacheFake.deletedKeys, "operator-summaries")
}

func TestDelete_NotFound(t *testing.T) {
	repo := &fakeOperatorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Operator, error) {
			return nil, operatorRepo.ErrOperatorNotFound
		},
	}

	svc := NewService(repo, &fakeCache{}, nopLogger{})

	err := svc.Delete(context.Background(), "OP9999")
	assert.ErrorIs(t, err, ErrOperatorNotFound)
}
