package domain

// Default booking-window configuration, applied when the business directory
// leaves the corresponding field unset (nil). An explicit zero coming from
// the directory is honored as-is.
const (
	DefaultMinAdvanceBookingHours = 2
	DefaultMaxAdvanceBookingDays  = 90
	DefaultBufferMinutes          = 0
)

// DefaultSlotDurationMinutes is used for availability queries when neither
// the request nor the service specifies a duration.
const DefaultSlotDurationMinutes = 60

// Business validation constants
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480 // 8 hours
	MaxNotesLength     = 500
	MaxReasonLength    = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses lists statuses that never block a time slot
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ValidStatuses lists every status accepted by the external workflow
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
