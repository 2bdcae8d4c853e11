package operator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/carserviceagency/CSA-AppointmentService/internal/domain"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/dbmetrics"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/psqlbuilder"
)

// operatorIDExpr выражение генерации идентификатора оператора.
// Последовательность живёт в БД, поэтому счётчик переживает перезапуск процесса
// и конкурентные вставки не могут получить одинаковый номер.
const operatorIDExpr = "'" + domain.OperatorIDPrefix + "' || lpad(nextval('operator_id_seq')::text, 4, '0')"

// Repository репозиторий для работы с операторами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория операторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового оператора с идентификатором из последовательности БД
func (r *Repository) Create(ctx context.Context, name string) (*domain.Operator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("operators").
		Columns("id", "name").
		Values(squirrel.Expr(operatorIDExpr), name).
		Suffix("RETURNING id, name, appointment_count, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var op domain.Operator
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&op.ID,
		&op.Name,
		&op.AppointmentCount,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	op.CreatedAt = createdAt.Time
	op.UpdatedAt = updatedAt.Time

	return &op, nil
}

// GetByID получает оператора по ID
// Внутри транзакции блокирует строку оператора (FOR UPDATE) -
// это точка сериализации проверки слота для одного оператора
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Operator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"appointment_count",
		"created_at",
		"updated_at",
	).
		From("operators").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var op domain.Operator
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&op.ID,
		&op.Name,
		&op.AppointmentCount,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOperatorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan operator: %v", ErrScanRow, err)
	}

	op.CreatedAt = createdAt.Time
	op.UpdatedAt = updatedAt.Time

	return &op, nil
}

// GetAll получает всех операторов, отсортированных по ID
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Operator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"appointment_count",
		"created_at",
		"updated_at",
	).
		From("operators").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	operators := make([]*domain.Operator, 0)

	for rows.Next() {
		var op domain.Operator
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&op.ID, &op.Name, &op.AppointmentCount, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}

		op.CreatedAt = createdAt.Time
		op.UpdatedAt = updatedAt.Time

		operators = append(operators, &op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return operators, nil
}

// UpdateName обновляет имя оператора
func (r *Repository) UpdateName(ctx context.Context, id string, name string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("operators").
		Set("name", name).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateName - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateName - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateName - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOperatorNotFound
	}

	return nil
}

// AdjustAppointmentCount изменяет денормализованный счётчик записей оператора
// delta = +1 при бронировании, -1 при отмене; вызывается в той же транзакции
func (r *Repository) AdjustAppointmentCount(ctx context.Context, id string, delta int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("operators").
		Set("appointment_count", squirrel.Expr("appointment_count + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AdjustAppointmentCount - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AdjustAppointmentCount - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AdjustAppointmentCount - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOperatorNotFound
	}

	return nil
}

// Delete удаляет оператора
// Проверка на существующие записи выполняется на уровне сервиса
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("operators").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOperatorNotFound
	}

	return nil
}
