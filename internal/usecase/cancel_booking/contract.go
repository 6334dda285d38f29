package cancel_booking

import (
	"context"
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByIDForUpdate читает бронирование с эксклюзивной блокировкой строки;
	// обязателен перед изменением, чтобы сериализовать конкурентные отмены
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// AvailabilityCache интерфейс кеша доступных слотов
type AvailabilityCache interface {
	Invalidate(ctx context.Context, businessID int64, date time.Time)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	Notify(ctx context.Context, event *notifier.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
