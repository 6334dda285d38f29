package domain

import "github.com/CAJINC/buy-locals-booking/pkg/types"

// TimeSlot is a candidate interval for a service at a business.
// Never persisted: always recomputed from business hours and existing
// bookings, or served from the availability cache.
type TimeSlot struct {
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	IsAvailable     bool             `json:"isAvailable"`
	Price           float64          `json:"price"`
	ServiceID       *int64           `json:"serviceId,omitempty"`
}

// Overlaps reports whether the slot intersects the half-open interval
// [otherStart, otherEnd). Exactly-adjacent intervals do not overlap.
func (s *TimeSlot) Overlaps(otherStart, otherEnd types.TimeString) bool {
	return s.StartTime.IsBefore(otherEnd) && otherStart.IsBefore(s.EndTime)
}
