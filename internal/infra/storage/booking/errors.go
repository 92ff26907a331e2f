package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят активным бронированием
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrConcurrentUpdate возвращается, когда транзакция проиграла конкурентной (40001/40P01)
	ErrConcurrentUpdate = errors.New("booking.repository: concurrent update")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
