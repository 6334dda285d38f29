package directory

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден в справочнике
	ErrBusinessNotFound = errors.New("business not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от справочника
	ErrInvalidResponse = errors.New("directory client: invalid response")
)
