package reschedule_appointment

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

// UseCase use case для переноса записи
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

// Execute выполняет use case переноса записи
// Проверка целевого слота и обновление идут в одной сериализуемой
// транзакции, конфликт слота возвращается клиенту как ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, customer=%s, date=%s, time=%s",
		req.AppointmentID, req.CustomerName, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Вычисляем конец слота: ровно час после начала
	endTime, err := domain.AppointmentEndTime(req.StartTime)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: failed to derive end time for %s: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: slot cannot cross midnight: %v", ErrInvalidInput, err)
	}

	var result *domain.Appointment
	var previousCustomer string
	var operatorName string

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем существующую запись
		existing, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		previousCustomer = existing.CustomerName

		// 3.2. Берём оператора с блокировкой (FOR UPDATE):
		// точка сериализации расписания та же, что при бронировании
		op, err := uc.operatorRepo.GetByID(txCtx, existing.OperatorID)
		if err != nil {
			if errors.Is(err, operatorRepo.ErrOperatorNotFound) {
				uc.logger.Error("RescheduleAppointment: operator id=%s missing for appointment id=%d",
					existing.OperatorID, req.AppointmentID)
				return fmt.Errorf("%w: operator missing for appointment", ErrInternal)
			}
			uc.logger.Error("RescheduleAppointment: failed to get operator id=%s: %v", existing.OperatorID, err)
			return fmt.Errorf("%w: failed to get operator: %v", ErrInternal, err)
		}
		operatorName = op.Name

		// 3.3. Получаем записи оператора на целевую дату
		appointments, err := uc.appointmentRepo.GetByOperatorAndDate(txCtx, existing.OperatorID, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments for operator=%s: %v",
				existing.OperatorID, err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 3.4. Проверяем целевой слот, исключая собственную запись
		if hasSlotConflict(appointments, req.StartTime, existing.ID) {
			uc.logger.Warn("RescheduleAppointment: slot %s %s already taken for operator=%s",
				req.Date.Format(domain.DateFormat), req.StartTime, existing.OperatorID)
			return ErrSlotConflict
		}

		// 3.5. Обновляем запись на месте, ID и оператор не меняются
		existing.CustomerName = strings.TrimSpace(req.CustomerName)
		existing.Date = req.Date
		existing.StartTime = req.StartTime
		existing.EndTime = endTime

		if err := uc.appointmentRepo.Update(txCtx, existing); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotConflict
			}
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 4. Инвалидация кэша до возврата успеха: сама запись, агрегатная
	// сводка и списки старого и нового клиента
	keys := []string{
		cache.AppointmentKey(result.ID),
		cache.OperatorSummariesKey,
		cache.CustomerKey(result.CustomerName),
	}
	if previousCustomer != result.CustomerName {
		keys = append(keys, cache.CustomerKey(previousCustomer))
	}

	if err := uc.cache.Delete(ctx, keys...); err != nil {
		uc.logger.Error("RescheduleAppointment: cache invalidation failed for appointment id=%d: %v", result.ID, err)
		return nil, fmt.Errorf("%w: cache invalidation failed: %v", ErrInternal, err)
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d", result.ID)

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
