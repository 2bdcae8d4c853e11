package operators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	"github.com/carserviceagency/CSA-AppointmentService/internal/infra/cache"
	operatorRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/operator"
	"github.com/carserviceagency/CSA-AppointmentService/internal/service/operators/models"
)

// Service сервис жизненного цикла операторов
type Service struct {
	operatorRepo OperatorRepository
	cache        ResponseCache
	logger       Logger
}

// NewService создает новый экземпляр сервиса операторов
func NewService(
	operatorRepo OperatorRepository,
	responseCache ResponseCache,
	logger Logger,
) *Service {
	return &Service{
		operatorRepo: operatorRepo,
		cache:        responseCache,
		logger:       logger,
	}
}

// Create создает нового оператора
// Идентификатор выдаёт последовательность в БД, поэтому конкурентные
// создания и перезапуски процесса не приводят к коллизиям
func (s *Service) Create(ctx context.Context, name string) (*models.OperatorResponse, error) {
	if err := validateOperatorName(name); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	op, err := s.operatorRepo.Create(ctx, strings.TrimSpace(name))
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	// Новый оператор должен появиться в агрегатной сводке
	if err := s.cache.Delete(ctx, cache.OperatorSummariesKey); err != nil {
		s.logger.Error("Create: cache invalidation failed for operator=%s: %v", op.ID, err)
		return nil, fmt.Errorf("%w: Create - cache invalidation failed: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created operator id=%s", op.ID)
	return models.FromDomainOperator(op), nil
}

// GetByID получает оператора по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.OperatorResponse, error) {
	op, err := s.operatorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, operatorRepo.ErrOperatorNotFound) {
			s.logger.Warn("GetByID: operator id=%s not found", id)
			return nil, ErrOperatorNotFound
		}
		s.logger.Error("GetByID: repository error for operator id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOperator(op), nil
}

// GetAll получает всех операторов
func (s *Service) GetAll(ctx context.Context) (*models.OperatorListResponse, error) {
	operators, err := s.operatorRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOperatorList(operators), nil
}

// UpdateName обновляет имя оператора - единственное изменяемое поле
func (s *Service) UpdateName(ctx context.Context, id string, name string) (*models.OperatorResponse, error) {
	if err := validateOperatorName(name); err != nil {
		s.logger.Warn("UpdateName: validation failed for operator id=%s: %v", id, err)
		return nil, err
	}

	if err := s.operatorRepo.UpdateName(ctx, id, strings.TrimSpace(name)); err != nil {
		if errors.Is(err, operatorRepo.ErrOperatorNotFound) {
			s.logger.Warn("UpdateName: operator id=%s not found", id)
			return nil, ErrOperatorNotFound
		}
		s.logger.Error("UpdateName: repository error for operator id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateName - repository error: %v", ErrInternal, err)
	}

	// Имя оператора денормализовано в агрегатной сводке
	if err := s.cache.Delete(ctx, cache.OperatorSummariesKey); err != nil {
		s.logger.Error("UpdateName: cache invalidation failed for operator=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateName - cache invalidation failed: %v", ErrInternal, err)
	}

	op, err := s.operatorRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateName: failed to re-read operator id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateName - failed to re-read operator: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateName: successfully updated operator id=%s", id)
	return models.FromDomainOperator(op), nil
}

// Delete удаляет оператора
// Удаление блокируется, пока на оператора ссылаются записи:
// каскадное удаление чужих бронирований недопустимо
func (s *Service) Delete(ctx context.Context, id string) error {
	op, err := s.operatorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, operatorRepo.ErrOperatorNotFound) {
			s.logger.Warn("Delete: operator id=%s not found", id)
			return ErrOperatorNotFound
		}
		s.logger.Error("Delete: repository error for operator id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if op.HasAppointments() {
		s.logger.Warn("Delete: operator id=%s still has %d appointments", id, op.AppointmentCount)
		return ErrOperatorHasAppointments
	}

	if err := s.operatorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, operatorRepo.ErrOperatorNotFound) {
			s.logger.Warn("Delete: operator id=%s not found during delete", id)
			return ErrOperatorNotFound
		}
		s.logger.Error("Delete: repository error for operator id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.Delete(ctx, cache.OperatorSummariesKey); err != nil {
		s.logger.Error("Delete: cache invalidation failed for operator=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - cache invalidation failed: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted operator id=%s", id)
	return nil
}

// validateOperatorName проверяет имя оператора
func validateOperatorName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: operator name is required", ErrInvalidInput)
	}
	if len(trimmed) > domain.MaxOperatorNameLength {
		return fmt.Errorf("%w: operator name exceeds %d characters", ErrInvalidInput, domain.MaxOperatorNameLength)
	}
	return nil
}
