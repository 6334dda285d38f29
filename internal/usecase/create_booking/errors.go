package create_booking

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден в справочнике
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrBusinessInactive возвращается, когда бизнес не принимает бронирования
	ErrBusinessInactive = errors.New("create_booking: business is not accepting bookings")

	// ErrServiceNotAvailable возвращается, когда услуга не найдена у бизнеса
	ErrServiceNotAvailable = errors.New("create_booking: service not available at this business")

	// ErrSlotNotAvailable возвращается при конфликте с существующим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается при нарушении минимального времени до бронирования
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrDateTooFarInFuture возвращается, когда дата превышает максимальное окно бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrBusinessClosed возвращается, когда бизнес закрыт в указанную дату
	ErrBusinessClosed = errors.New("create_booking: business is closed on this date")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("create_booking: requested time is outside business hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
