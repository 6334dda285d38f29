package create_booking

import (
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64               // ID пользователя-потребителя
	BusinessID      int64               // ID бизнеса
	ServiceID       *int64              // ID услуги (опционально)
	ScheduledAt     time.Time           // Абсолютное время начала
	DurationMinutes int                 // Длительность в минутах (15-480)
	TotalAmount     float64             // Стоимость, до 2 знаков после запятой
	Customer        domain.CustomerInfo // Снимок контактов на момент бронирования
	Notes           *string             // Заметки (опционально)
}

// Date возвращает календарную дату бронирования (без времени)
func (r *Request) Date() time.Time {
	return time.Date(r.ScheduledAt.Year(), r.ScheduledAt.Month(), r.ScheduledAt.Day(),
		0, 0, 0, 0, r.ScheduledAt.Location())
}

// StartTime возвращает время начала как "HH:MM"
func (r *Request) StartTime() types.TimeString {
	return types.NewTimeString(r.ScheduledAt)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	UserID          int64
	BusinessID      int64
	ServiceID       *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	TotalAmount     float64
	Customer        domain.CustomerInfo
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
