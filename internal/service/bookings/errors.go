package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
