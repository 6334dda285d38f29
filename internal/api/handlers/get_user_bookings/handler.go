package get_user_bookings

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
	msgInvalidUserID     = "некорректный ID пользователя"
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidPagination = "некорректные параметры пагинации"
	msgInvalidStatus     = "некорректный статус"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
)

const (
	defaultLimit = 20
	maxLimit     = 100
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

// Handle GET /api/v1/users/{userId}/bookings
// Query params: status (optional), businessId (optional),
// limit (optional, default 20, max 100), offset (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	authUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Историю бронирований видит только сам пользователь
	if authUserID != userID {
		h.logger.Warn("GET /users/{userId}/bookings - Access denied: path_user=%d, auth_user=%d", userID, authUserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}

	var businessIDPtr *int64
	if businessIDStr := r.URL.Query().Get("businessId"); businessIDStr != "" {
		businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /users/{userId}/bookings - Invalid business ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)
			return
		}
		businessIDPtr = &businessID
	}

	limit, offset, err := parsePagination(r)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/bookings - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	serviceReq := &models.GetUserBookingsRequest{
		UserID:     userID,
		Status:     statusPtr,
		BusinessID: businessIDPtr,
		Limit:      limit,
		Offset:     offset,
	}

	result, err := h.service.GetUserBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /users/{userId}/bookings - Invalid status filter: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{userId}/bookings - Failed to get bookings: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/bookings - Bookings retrieved successfully: user_id=%d, count=%d, total=%d",
		userID, len(result.Bookings), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parsePagination(r *http.Request) (limit, offset int, err error) {
	limit = defaultLimit

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
		if limit > maxLimit {
			limit = maxLimit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, errors.New("offset must be a non-negative integer")
		}
	}

	return limit, offset, nil
}
