package create_booking

import (
	"context"
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetConflicting(ctx context.Context, businessID int64, date time.Time, startTime string, durationMinutes int, excludeBookingID *int64) ([]*domain.Booking, error)
}

// DirectoryClient интерфейс клиента справочника бизнесов
type DirectoryClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directory.Business, error)
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
