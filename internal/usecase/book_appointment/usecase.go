package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	"github.com/carserviceagency/CSA-AppointmentService/internal/infra/cache"
	appointmentRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/appointment"
	operatorRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/operator"
)

// UseCase use case для бронирования записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	operatorRepo    OperatorRepository
	cache           ResponseCache
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	operatorRepo OperatorRepository,
	responseCache ResponseCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		operatorRepo:    operatorRepo,
		cache:           responseCache,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case бронирования записи
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// проверка слота и вставка идут под одной транзакцией, уникальный индекс
// в БД страхует от гонок на другом уровне изоляции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: customer=%s, operator=%s, date=%s, time=%s",
		req.CustomerName, req.OperatorID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Вычисляем конец слота: ровно час после начала
	endTime, err := domain.AppointmentEndTime(req.StartTime)
	if err != nil {
		uc.logger.Warn("BookAppointment: failed to derive end time for %s: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: slot cannot cross midnight: %v", ErrInvalidInput, err)
	}

	var result *domain.Appointment
	var operatorName string

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем оператора с блокировкой (FOR UPDATE):
		// строка оператора служит точкой сериализации его расписания
		op, err := uc.operatorRepo.GetByID(txCtx, req.OperatorID)
		if err != nil {
			if errors.Is(err, operatorRepo.ErrOperatorNotFound) {
				uc.logger.Warn("BookAppointment: operator id=%s not found", req.OperatorID)
				return ErrOperatorNotFound
			}
			uc.logger.Error("BookAppointment: failed to get operator id=%s: %v", req.OperatorID, err)
			return fmt.Errorf("%w: failed to get operator: %v", ErrInternal, err)
		}
		operatorName = op.Name

		// 3.2. Получаем записи оператора на эту дату
		appointments, err := uc.appointmentRepo.GetByOperatorAndDate(txCtx, req.OperatorID, req.Date)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get appointments for operator=%s: %v", req.OperatorID, err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 3.3. Проверяем доступность слота
		if hasSlotConflict(appointments, req.StartTime, 0) {
			uc.logger.Warn("BookAppointment: slot %s %s already taken for operator=%s",
				req.Date.Format(domain.DateFormat), req.StartTime, req.OperatorID)
			return ErrSlotConflict
		}

		// 3.4. Создаем запись
		appointment := &domain.Appointment{
			CustomerName: strings.TrimSpace(req.CustomerName),
			Date:         req.Date,
			StartTime:    req.StartTime,
			EndTime:      endTime,
			OperatorID:   req.OperatorID,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotConflict
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 3.5. Увеличиваем счётчик записей оператора
		if err := uc.operatorRepo.AdjustAppointmentCount(txCtx, req.OperatorID, 1); err != nil {
			uc.logger.Error("BookAppointment: failed to adjust operator counter: %v", err)
			return fmt.Errorf("%w: failed to adjust operator counter: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 4. Инвалидация кэша до возврата успеха
	err = uc.cache.Delete(ctx,
		cache.CustomerKey(result.CustomerName),
		cache.OperatorSummariesKey,
	)
	if err != nil {
		uc.logger.Error("BookAppointment: cache invalidation failed for appointment id=%d: %v", result.ID, err)
		return nil, fmt.Errorf("%w: cache invalidation failed: %v", ErrInternal, err)
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		CustomerName: result.CustomerName,
		Date:         result.Date,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		OperatorID:   result.OperatorID,
		OperatorName: operatorName,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
