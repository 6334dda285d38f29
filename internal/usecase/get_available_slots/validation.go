package get_available_slots

import (
	"fmt"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
)

// validateRequest проверяет базовую корректность входных данных
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}
	return nil
}
