package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/carserviceagency/CSA-AppointmentService/internal/infra/cache"
	appointmentRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/appointment"
	operatorRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/operator"
	"github.com/carserviceagency/CSA-AppointmentService/internal/service/appointments/models"
)

// Service читающая сторона и отмена записей
// Все читающие операции работают через кэш (read-through),
// отмена инвалидирует затронутые ключи до возврата успеха
type Service struct {
	appointmentRepo AppointmentRepository
	operatorRepo    OperatorRepository
	cache           ResponseCache
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	operatorRepo OperatorRepository,
	responseCache ResponseCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		operatorRepo:    operatorRepo,
		cache:           responseCache,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Результат кэшируется по ключу appointment:{id}
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	key := cache.AppointmentKey(id)

	var cached models.AppointmentResponse
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		s.logger.Info("GetByID: cache hit for appointment id=%d", id)
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// Кэш недоступен - читаем из хранилища, не роняя запрос
		s.logger.Warn("GetByID: cache read failed for appointment id=%d: %v", id, err)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	operatorName, err := s.operatorName(ctx, appt.OperatorID)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainAppointment(appt, operatorName)

	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.logger.Warn("GetByID: cache write failed for appointment id=%d: %v", id, err)
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return resp, nil
}

// GetCustomerAppointments получает все записи клиента по имени
// Пустой список - валидный результат, существование имени не проверяется
// Результат кэшируется по ключу customer:{name}
func (s *Service) GetCustomerAppointments(ctx context.Context, customerName string) (*models.AppointmentListResponse, error) {
	if customerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	key := cache.CustomerKey(customerName)

	var cached models.AppointmentListResponse
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		s.logger.Info("GetCustomerAppointments: cache hit for customer=%s", customerName)
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("GetCustomerAppointments: cache read failed for customer=%s: %v", customerName, err)
	}

	appointments, err := s.appointmentRepo.GetByCustomerName(ctx, customerName)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%s: %v", customerName, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	operatorNames, err := s.operatorNames(ctx)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainAppointmentList(appointments, operatorNames)

	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.logger.Warn("GetCustomerAppointments: cache write failed for customer=%s: %v", customerName, err)
	}

	s.logger.Info("GetCustomerAppointments: successfully fetched %d appointments for customer=%s",
		len(resp.Appointments), customerName)
	return resp, nil
}

// GetOperatorSummaries собирает сводку по всем операторам:
// для каждого - его записи и их количество
// Результат кэшируется целиком под единственным агрегатным ключом,
// любая мутация любого расписания инвалидирует весь агрегат
func (s *Service) GetOperatorSummaries(ctx context.Context) (*models.OperatorSummariesResponse, error) {
	var cached models.OperatorSummariesResponse
	err := s.cache.Get(ctx, cache.OperatorSummariesKey, &cached)
	if err == nil {
		s.logger.Info("GetOperatorSummaries: cache hit")
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("GetOperatorSummaries: cache read failed: %v", err)
	}

	operators, err := s.operatorRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetOperatorSummaries: failed to list operators: %v", err)
		return nil, fmt.Errorf("%w: GetOperatorSummaries - failed to list operators: %v", ErrInternal, err)
	}

	resp := &models.OperatorSummariesResponse{
		Operators: make([]models.OperatorSummaryResponse, 0, len(operators)),
	}

	for _, op := range operators {
		appointments, err := s.appointmentRepo.GetByOperatorID(ctx, op.ID)
		if err != nil {
			s.logger.Error("GetOperatorSummaries: failed to fetch appointments for operator=%s: %v", op.ID, err)
			return nil, fmt.Errorf("%w: GetOperatorSummaries - failed to fetch appointments: %v", ErrInternal, err)
		}

		summary := models.OperatorSummaryResponse{
			OperatorID:       op.ID,
			OperatorName:     op.Name,
			NoOfAppointments: len(appointments),
			Appointments:     make([]models.AppointmentResponse, 0, len(appointments)),
		}
		for _, appt := range appointments {
			summary.Appointments = append(summary.Appointments, *models.FromDomainAppointment(appt, op.Name))
		}

		resp.Operators = append(resp.Operators, summary)
	}

	if err := s.cache.Set(ctx, cache.OperatorSummariesKey, resp); err != nil {
		s.logger.Warn("GetOperatorSummaries: cache write failed: %v", err)
	}

	s.logger.Info("GetOperatorSummaries: successfully built summaries for %d operators", len(resp.Operators))
	return resp, nil
}

// Cancel отменяет запись: физическое удаление + декремент счётчика оператора
// в одной транзакции, затем инвалидация кэша до возврата успеха
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.appointmentRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - delete appointment: %v", ErrInternal, err)
		}

		if err := s.operatorRepo.AdjustAppointmentCount(txCtx, appt.OperatorID, -1); err != nil {
			return fmt.Errorf("%w: Cancel - adjust operator counter: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Инвалидация до возврата успеха: иначе читатели будут видеть
	// удалённую запись до истечения TTL
	err = s.cache.Delete(ctx,
		cache.AppointmentKey(id),
		cache.CustomerKey(appt.CustomerName),
		cache.OperatorSummariesKey,
	)
	if err != nil {
		s.logger.Error("Cancel: cache invalidation failed for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - cache invalidation failed: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// Вспомогательные методы

// operatorName получает имя оператора для денормализации в ответ
func (s *Service) operatorName(ctx context.Context, operatorID string) (string, error) {
	op, err := s.operatorRepo.GetByID(ctx, operatorID)
	if err != nil {
		if errors.Is(err, operatorRepo.ErrOperatorNotFound) {
			s.logger.Warn("operatorName: operator id=%s not found", operatorID)
			return "", ErrOperatorNotFound
		}
		s.logger.Error("operatorName: failed to get operator id=%s: %v", operatorID, err)
		return "", fmt.Errorf("%w: operatorName - failed to get operator: %v", ErrInternal, err)
	}
	return op.Name, nil
}

// operatorNames строит отображение operatorId -> имя для списочных ответов
func (s *Service) operatorNames(ctx context.Context) (map[string]string, error) {
	operators, err := s.operatorRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("operatorNames: failed to list operators: %v", err)
		return nil, fmt.Errorf("%w: operatorNames - failed to list operators: %v", ErrInternal, err)
	}

	names := make(map[string]string, len(operators))
	for _, op := range operators {
		names[op.ID] = op.Name
	}
	return names, nil
}
