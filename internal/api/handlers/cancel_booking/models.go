package cancel_booking

import (
	"github.com/CAJINC/buy-locals-booking/internal/service/bookings/models"
	cancelBooking "github.com/CAJINC/buy-locals-booking/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// RefundPayload расчёт возврата по политике отмены
type RefundPayload struct {
	Amount  float64 `json:"amount"`
	Tier    string  `json:"tier"`
	Message string  `json:"message"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Refund  RefundPayload           `json:"refund"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Refund: RefundPayload{
			Amount:  resp.RefundAmount,
			Tier:    string(resp.RefundTier),
			Message: resp.Message,
		},
	}
}
