package notifier

// BookingEvent событие бронирования для сервиса уведомлений
type BookingEvent struct {
	Event      string  `json:"event"` // "booking.created" | "booking.cancelled"
	BookingID  int64   `json:"booking_id"`
	UserID     int64   `json:"user_id"`
	BusinessID int64   `json:"business_id"`
	Date       string  `json:"date"`       // YYYY-MM-DD
	StartTime  string  `json:"start_time"` // HH:MM

	// Заполняются только для отмены
	RefundAmount *float64 `json:"refund_amount,omitempty"`
	Reason       *string  `json:"reason,omitempty"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)
