package get_available_slots

import (
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	"github.com/CAJINC/buy-locals-booking/pkg/types"
)

// generateCandidateSlots строит сетку кандидатов в пределах рабочего дня.
// Генерация детерминирована: зависит только от расписания и параметров
// слота, без обращения к часам. Шаг сетки = длительность + буфер, слот
// попадает в сетку, только если целиком помещается до закрытия.
func generateCandidateSlots(
	schedule directory.DaySchedule,
	durationMinutes int,
	bufferMinutes int,
	price float64,
	serviceID *int64,
) ([]domain.TimeSlot, error) {
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return []domain.TimeSlot{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return nil, err
	}
	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return nil, err
	}

	openMinutes, err := openTime.Minutes()
	if err != nil {
		return nil, err
	}
	closeMinutes, err := closeTime.Minutes()
	if err != nil {
		return nil, err
	}

	step := durationMinutes + bufferMinutes

	slots := make([]domain.TimeSlot, 0)
	for start := openMinutes; start+durationMinutes <= closeMinutes; start += step {
		startTime, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, err
		}
		endTime, err := types.NewTimeStringFromMinutes(start + durationMinutes)
		if err != nil {
			return nil, err
		}

		slots = append(slots, domain.TimeSlot{
			StartTime:       startTime,
			EndTime:         endTime,
			DurationMinutes: durationMinutes,
			IsAvailable:     true,
			Price:           price,
			ServiceID:       serviceID,
		})
	}

	return slots, nil
}

// markUnavailableSlots помечает слоты, пересекающиеся с активными
// бронированиями. Интервалы полуоткрытые: бронирование, заканчивающееся
// ровно в начале слота, слот не блокирует.
func markUnavailableSlots(slots []domain.TimeSlot, bookings []*domain.Booking) []domain.TimeSlot {
	for i := range slots {
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			bookingEnd, err := booking.EndTime()
			if err != nil {
				continue
			}
			if slots[i].Overlaps(booking.StartTime, bookingEnd) {
				slots[i].IsAvailable = false
				break
			}
		}
	}
	return slots
}

// availableOnly оставляет только свободные слоты
func availableOnly(slots []domain.TimeSlot) []domain.TimeSlot {
	result := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsAvailable {
			result = append(result, slot)
		}
	}
	return result
}

// scheduleForWeekday возвращает расписание бизнеса на день недели даты
func scheduleForWeekday(hours directory.WorkingHours, date time.Time) directory.DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return hours.Monday
	case time.Tuesday:
		return hours.Tuesday
	case time.Wednesday:
		return hours.Wednesday
	case time.Thursday:
		return hours.Thursday
	case time.Friday:
		return hours.Friday
	case time.Saturday:
		return hours.Saturday
	default:
		return hours.Sunday
	}
}
