package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/omerbhr129/meety-sub000/pkg/dbmetrics"
	"github.com/omerbhr129/meety-sub000/pkg/pgerrors"
)

// TransactionManager выполняет функции внутри транзакции.
// Транзакция передается через context, репозитории забирают её через dbmetrics.GetExecutor.
type TransactionManager struct {
	db dbmetrics.TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db dbmetrics.TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// Используется там, где проверка и запись должны быть атомарны (создание бронирования).
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов присоединяется к внешней транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if pgerrors.IsSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
		}
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	return nil
}
