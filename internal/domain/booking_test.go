package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CAJINC/buy-locals-booking/pkg/types"
)

func TestBookingIsActive(t *testing.T) {
	for _, status := range []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted} {
		b := &Booking{Status: status}
		assert.True(t, b.IsActive(), "status %s", status)
	}
	for _, status := range []BookingStatus{StatusCancelled, StatusNoShow} {
		b := &Booking{Status: status}
		assert.False(t, b.IsActive(), "status %s", status)
	}
}

func TestBookingCanBeCancelled(t *testing.T) {
	cancellable := map[BookingStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCompleted: false,
		StatusCancelled: false,
		StatusNoShow:    false,
	}

	for status, want := range cancellable {
		b := &Booking{Status: status}
		assert.Equal(t, want, b.CanBeCancelled(), "status %s", status)
	}
}

func TestBookingScheduledAt(t *testing.T) {
	b := &Booking{
		BookingDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:30"),
	}

	scheduledAt, err := b.ScheduledAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC), scheduledAt)
}

func TestBookingEndTime(t *testing.T) {
	b := &Booking{
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 90,
	}

	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:30"), end)
}
