package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrCannotCancel возвращается для терминальных статусов (completed, cancelled)
	ErrCannotCancel = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
