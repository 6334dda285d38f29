package domain

import (
	"time"

	"github.com/CAJINC/buy-locals-booking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// CustomerInfo is a snapshot of the customer's contact details taken at
// booking time. Deliberately denormalized so later profile edits do not
// retroactively alter historical bookings.
type CustomerInfo struct {
	Name  string
	Phone string
	Email string
}

// Booking represents a reserved time slot at a business
type Booking struct {
	ID         int64
	UserID     int64
	BusinessID int64
	ServiceID  *int64 // nil when booked without a specific service

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	TotalAmount float64
	Customer    CustomerInfo
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slot.
// Cancelled and no-show bookings never block a slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can transition to cancelled.
// Completed and already-cancelled bookings are terminal.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// ScheduledAt combines the booking date and start time into the absolute
// timestamp the service is scheduled for
func (b *Booking) ScheduledAt() (time.Time, error) {
	return b.StartTime.ToDateTime(b.BookingDate)
}

// EndTime returns the exclusive end of the booked interval
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// UserBookingsFilter filters the paginated user booking history
type UserBookingsFilter struct {
	UserID     int64
	Status     *BookingStatus
	BusinessID *int64
	Limit      int
	Offset     int
}

// BusinessBookingsFilter filters bookings of a business over a date window
type BusinessBookingsFilter struct {
	BusinessID      int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}
