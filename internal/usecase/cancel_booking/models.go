package cancel_booking

import (
	"github.com/CAJINC/buy-locals-booking/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64   // ID бронирования
	UserID    int64   // ID пользователя, запросившего отмену
	Reason    *string // Причина отмены (опционально)
}

// Response результат отмены: обновлённое бронирование и расчёт возврата.
// Само исполнение денежного возврата выполняет платёжный сервис на стороне
// вызывающего, используя RefundAmount из этого ответа.
type Response struct {
	Booking      *domain.Booking
	RefundAmount float64
	RefundTier   domain.RefundTier
	Message      string
}
