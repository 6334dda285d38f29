package create_booking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	"github.com/CAJINC/buy-locals-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	if req.ScheduledAt.Before(now) {
		return fmt.Errorf("%w: scheduledAt must not be in the past", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.TotalAmount < 0 {
		return fmt.Errorf("%w: totalAmount must not be negative", ErrInvalidInput)
	}

	// Не больше двух знаков после запятой
	if math.Abs(req.TotalAmount*100-math.Round(req.TotalAmount*100)) > 1e-9 {
		return fmt.Errorf("%w: totalAmount must have at most 2 fractional digits", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Customer.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateBookingWindow проверяет ограничения окна бронирования бизнеса.
// Явный ноль в настройках справочника уважается: nil означает "не задано",
// и только тогда применяется дефолт движка.
func validateBookingWindow(scheduledAt, now time.Time, minAdvanceHours, maxAdvanceDays int) error {
	hoursUntil := scheduledAt.Sub(now).Hours()
	if hoursUntil < float64(minAdvanceHours) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, minAdvanceHours)
	}

	// Даты сравниваем в одном часовом поясе: офсет в запросе
	// не должен сдвигать границу окна
	scheduledLocal := scheduledAt.In(now.Location())

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, maxAdvanceDays)
	bookingDateOnly := time.Date(scheduledLocal.Year(), scheduledLocal.Month(), scheduledLocal.Day(),
		0, 0, 0, 0, now.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// validateBusinessHours проверяет, что интервал [startTime, startTime+duration)
// целиком лежит в рабочих часах бизнеса в этот день
func validateBusinessHours(schedule directory.DaySchedule, startTime types.TimeString, durationMinutes int) error {
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return ErrBusinessClosed
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: malformed open time %q: %v", ErrInternal, *schedule.OpenTime, err)
	}

	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: malformed close time %q: %v", ErrInternal, *schedule.CloseTime, err)
	}

	endTime, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: booking runs past midnight", ErrOutsideBusinessHours)
	}

	if startTime.IsBefore(openTime) || endTime.IsAfter(closeTime) {
		return ErrOutsideBusinessHours
	}

	return nil
}

// getWorkingHoursForDay возвращает расписание работы бизнеса на день недели
func getWorkingHoursForDay(business *directory.Business, date time.Time) directory.DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return business.WorkingHours.Monday
	case time.Tuesday:
		return business.WorkingHours.Tuesday
	case time.Wednesday:
		return business.WorkingHours.Wednesday
	case time.Thursday:
		return business.WorkingHours.Thursday
	case time.Friday:
		return business.WorkingHours.Friday
	case time.Saturday:
		return business.WorkingHours.Saturday
	case time.Sunday:
		return business.WorkingHours.Sunday
	default:
		return directory.DaySchedule{IsOpen: false}
	}
}
