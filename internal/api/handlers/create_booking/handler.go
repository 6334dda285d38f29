package create_booking

import (
	"errors"
	"net/http"

	"github.com/CAJINC/buy-locals-booking/internal/api/handlers"
	"github.com/CAJINC/buy-locals-booking/internal/api/middleware"
	createBooking "github.com/CAJINC/buy-locals-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidScheduledAt   = "некорректный формат scheduledAt, ожидается RFC3339"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgBusinessNotFound     = "бизнес не найден"
	msgBusinessInactive     = "бизнес не принимает бронирования"
	msgServiceNotAvailable  = "услуга недоступна в этом бизнесе"
	msgBusinessClosed       = "бизнес закрыт в выбранную дату"
	msgOutsideBusinessHours = "запрошенное время вне рабочих часов"
	msgTooLateToBook        = "слишком поздно для бронирования этого слота"
	msgDateTooFar           = "дата бронирования слишком далеко в будущем"
	msgInvalidInput         = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, business_id=%d", userID, req.BusinessID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrBusinessNotFound):
			h.logger.Warn("POST /bookings - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createBooking.ErrBusinessInactive):
			h.logger.Warn("POST /bookings - Business inactive: business_id=%d", req.BusinessID)
			handlers.RespondBadRequest(w, msgBusinessInactive)

		case errors.Is(err, createBooking.ErrServiceNotAvailable):
			h.logger.Warn("POST /bookings - Service not available: user_id=%d, business_id=%d", userID, req.BusinessID)
			handlers.RespondNotFound(w, msgServiceNotAvailable)

		case errors.Is(err, createBooking.ErrBusinessClosed):
			h.logger.Warn("POST /bookings - Business closed: user_id=%d, business_id=%d", userID, req.BusinessID)
			handlers.RespondBadRequest(w, msgBusinessClosed)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /bookings - Outside business hours: user_id=%d, business_id=%d", userID, req.BusinessID)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d, business_id=%d", userID, req.BusinessID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%d, business_id=%d", userID, req.BusinessID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, business_id=%d, error=%v", userID, req.BusinessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, business_id=%d, error=%v",
				userID, req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, business_id=%d",
		result.ID, userID, req.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
