package cancel_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/CAJINC/buy-locals-booking/internal/api/handlers"
	"github.com/CAJINC/buy-locals-booking/internal/api/middleware"
	cancelBooking "github.com/CAJINC/buy-locals-booking/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "бронирование не может быть отменено"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: отмена без причины допустима
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelBooking.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled: booking_id=%d, user_id=%d, refund=%.2f",
		bookingID, userID, result.RefundAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
