package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	"github.com/CAJINC/buy-locals-booking/pkg/ptr"
	"github.com/CAJINC/buy-locals-booking/pkg/types"
)

func validRequest(now time.Time) *Request {
	return &Request{
		UserID:          1,
		BusinessID:      2,
		ScheduledAt:     now.Add(72 * time.Hour),
		DurationMinutes: 60,
		TotalAmount:     50.00,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}
}

func TestValidateRequest(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, validateRequest(validRequest(now), now))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero userID", func(r *Request) { r.UserID = 0 }},
		{"zero businessID", func(r *Request) { r.BusinessID = 0 }},
		{"negative serviceID", func(r *Request) { r.ServiceID = ptr.Ptr(int64(-1)) }},
		{"zero scheduledAt", func(r *Request) { r.ScheduledAt = time.Time{} }},
		{"scheduledAt in the past", func(r *Request) { r.ScheduledAt = now.Add(-time.Hour) }},
		{"duration below minimum", func(r *Request) { r.DurationMinutes = 10 }},
		{"duration above maximum", func(r *Request) { r.DurationMinutes = 500 }},
		{"negative amount", func(r *Request) { r.TotalAmount = -1 }},
		{"amount with 3 fractional digits", func(r *Request) { r.TotalAmount = 10.999 }},
		{"empty customer name", func(r *Request) { r.Customer.Name = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(now)
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req, now), ErrInvalidInput)
		})
	}
}

func TestValidateBookingWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Ровно на границе минимального окна - допустимо
	assert.NoError(t, validateBookingWindow(now.Add(2*time.Hour), now, 2, 90))

	// Меньше минимального окна
	err := validateBookingWindow(now.Add(time.Hour), now, 2, 90)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// Явный ноль от бизнеса уважается: бронирование "прямо сейчас" проходит
	assert.NoError(t, validateBookingWindow(now.Add(10*time.Minute), now, 0, 90))

	// Дальше максимального окна
	err = validateBookingWindow(now.AddDate(0, 0, 91), now, 2, 90)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	// Ровно на границе максимального окна - допустимо
	assert.NoError(t, validateBookingWindow(now.AddDate(0, 0, 90), now, 2, 90))
}

func TestValidateBookingWindowTimezoneOffsets(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// 90-й день окна - 2026-06-08. Тот же момент (08.06 12:00 UTC),
	// записанный с офсетом +14, имеет локальную дату 9 июня -
	// граница окна считается в часовом поясе сервера, запрос проходит
	ahead := time.Date(2026, 6, 9, 2, 0, 0, 0, time.FixedZone("UTC+14", 14*3600))
	assert.NoError(t, validateBookingWindow(ahead, now, 0, 90))

	// Момент за пределами окна (09.06 09:00 UTC), записанный с офсетом -10,
	// имеет локальную дату 8 июня - офсет не протаскивает запрос в окно
	behind := time.Date(2026, 6, 8, 23, 0, 0, 0, time.FixedZone("UTC-10", -10*3600))
	assert.ErrorIs(t, validateBookingWindow(behind, now, 0, 90), ErrDateTooFarInFuture)
}

func TestValidateBusinessHours(t *testing.T) {
	schedule := directory.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("17:00"),
	}

	// Целиком внутри рабочих часов
	assert.NoError(t, validateBusinessHours(schedule, types.TimeString("10:00"), 60))

	// Граничные значения: начало в открытие, конец в закрытие
	assert.NoError(t, validateBusinessHours(schedule, types.TimeString("09:00"), 60))
	assert.NoError(t, validateBusinessHours(schedule, types.TimeString("16:00"), 60))

	// Начало до открытия
	err := validateBusinessHours(schedule, types.TimeString("08:30"), 60)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	// Конец после закрытия
	err = validateBusinessHours(schedule, types.TimeString("16:30"), 60)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	// Закрытый день
	err = validateBusinessHours(directory.DaySchedule{IsOpen: false}, types.TimeString("10:00"), 60)
	assert.ErrorIs(t, err, ErrBusinessClosed)
}
