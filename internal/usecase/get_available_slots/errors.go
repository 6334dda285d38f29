package get_available_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден в справочнике
	ErrBusinessNotFound = errors.New("get_available_slots: business not found")

	// ErrServiceNotAvailable возвращается, когда услуга не найдена у бизнеса
	ErrServiceNotAvailable = errors.New("get_available_slots: service not available at this business")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
