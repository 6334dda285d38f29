package bookings

import (
	"context"
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, int64, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// DirectoryClient интерфейс клиента справочника бизнесов
type DirectoryClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directory.Business, error)
}

// AvailabilityCache интерфейс кеша доступных слотов
type AvailabilityCache interface {
	Invalidate(ctx context.Context, businessID int64, date time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
