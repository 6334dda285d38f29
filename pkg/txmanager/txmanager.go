package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// DBExecutor общий интерфейс выполнения запросов, реализуется *sql.DB и *sql.Tx.
// Репозитории зависят только от него и не знают, идёт ли работа в транзакции.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txContextKey struct{}

// WithTx кладет активную транзакцию в контекст
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть,
// иначе переданный по умолчанию executor (обычно *sql.DB)
func GetExecutor(ctx context.Context, def DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return def
}

// IsInTransaction сообщает, выполняется ли контекст внутри транзакции.
// Репозитории используют это, чтобы добавлять FOR UPDATE только на write-пути.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(*sql.Tx)
	return ok
}

// TransactionManager управляет жизненным циклом транзакций.
// Колбэк получает контекст с привязанной транзакцией; любая ошибка
// колбэка приводит к полному откату.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// Используется на write-пути бронирований (lock-then-check).
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin: %w", err)
	}

	if err := fn(WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("txmanager: rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit: %w", err)
	}
	return nil
}

// IsSerializationFailure сообщает, что Postgres откатил сериализуемую
// транзакцию из-за конфликта с конкурентной (SQLSTATE 40001). Это не
// внутренняя ошибка: вызывающий код повторяет или отклоняет операцию.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}
