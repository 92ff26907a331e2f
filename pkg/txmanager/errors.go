package txmanager

import "errors"

var (
	// ErrBeginTx возвращается, когда не удалось открыть транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается при ошибке фиксации транзакции
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure транзакция не может быть сериализована с конкурентной
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)
