package check_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	operatorRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/operator"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
)

// UseCase use case для проверки доступности расписания оператора
// Ответ не кэшируется: расписание меняется каждым бронированием,
// а запрос обслуживается одним чтением по индексу
type UseCase struct {
	appointmentRepo AppointmentRepository
	operatorRepo    OperatorRepository
	dayStart        types.TimeString
	dayEnd          types.TimeString
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// dayStart и dayEnd задают границы рабочего дня из конфигурации
func NewUseCase(
	appointmentRepo AppointmentRepository,
	operatorRepo OperatorRepository,
	dayStart types.TimeString,
	dayEnd types.TimeString,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		operatorRepo:    operatorRepo,
		dayStart:        dayStart,
		dayEnd:          dayEnd,
		logger:          logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: operator=%s, date=%s",
		req.OperatorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if strings.TrimSpace(req.OperatorID) == "" {
		return nil, fmt.Errorf("%w: operatorId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем оператора
	op, err := uc.operatorRepo.GetByID(ctx, req.OperatorID)
	if err != nil {
		if errors.Is(err, operatorRepo.ErrOperatorNotFound) {
			uc.logger.Warn("CheckAvailability: operator id=%s not found", req.OperatorID)
			return nil, ErrOperatorNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get operator id=%s: %v", req.OperatorID, err)
		return nil, fmt.Errorf("%w: failed to get operator: %v", ErrInternal, err)
	}

	// 3. Получаем записи оператора на дату
	appointments, err := uc.appointmentRepo.GetByOperatorAndDate(ctx, req.OperatorID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get appointments for operator=%s: %v", req.OperatorID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Строим часовую сетку рабочего дня
	slots, err := buildSlots(uc.dayStart, uc.dayEnd, appointments)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to build slots: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckAvailability: built %d slots for operator=%s on %s",
		len(slots), req.OperatorID, req.Date.Format(domain.DateFormat))

	return &Response{
		OperatorID:   op.ID,
		OperatorName: op.Name,
		Date:         req.Date,
		Slots:        slots,
	}, nil
}
