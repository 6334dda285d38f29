package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/CAJINC/buy-locals-booking/internal/api/handlers"
	"github.com/CAJINC/buy-locals-booking/internal/api/middleware"
	"github.com/CAJINC/buy-locals-booking/internal/service/bookings"
	"github.com/CAJINC/buy-locals-booking/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgBusinessNotFound   = "бизнес не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateStatusRequest{
		UserID: userID,
		Status: req.Status,
	}

	if err := h.service.UpdateStatus(r.Context(), bookingID, serviceReq); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrBusinessNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Business not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: booking_id=%d, status=%s",
				bookingID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated successfully: booking_id=%d, status=%s, user_id=%d",
		bookingID, req.Status, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
