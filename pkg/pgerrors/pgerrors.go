package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок Postgres, которые сервис обрабатывает отдельно
const (
	CodeUniqueViolation      pq.ErrorCode = "23505"
	CodeSerializationFailure pq.ErrorCode = "40001"
	CodeDeadlockDetected     pq.ErrorCode = "40P01"
)

// Code возвращает код ошибки Postgres или пустую строку
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsSerializationFailure транзакция проиграла конкурентной (serializable или deadlock)
func IsSerializationFailure(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}
