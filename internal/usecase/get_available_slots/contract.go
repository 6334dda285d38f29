package get_available_slots

import (
	"context"
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetForDate получает активные бронирования бизнеса на дату без блокировки
	GetForDate(ctx context.Context, businessID int64, date time.Time) ([]*domain.Booking, error)
}

// DirectoryClient интерфейс клиента справочника бизнесов
type DirectoryClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directory.Business, error)
}

// AvailabilityCache интерфейс кеша доступных слотов
type AvailabilityCache interface {
	Get(ctx context.Context, businessID int64, date time.Time, variant string) ([]domain.TimeSlot, bool)
	Put(ctx context.Context, businessID int64, date time.Time, variant string, slots []domain.TimeSlot)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
