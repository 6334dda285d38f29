package get_business_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/CAJINC/buy-locals-booking/internal/api/handlers"
	"github.com/CAJINC/buy-locals-booking/internal/api/middleware"
	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/service/bookings"
	"github.com/CAJINC/buy-locals-booking/internal/service/bookings/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтрации"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgBusinessNotFound  = "бизнес не найден"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/businesses/{businessId}/bookings
// Query params: startDate, endDate (optional, YYYY-MM-DD),
// status (optional), includeInactive (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	startDate, err := parseDateParam(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := parseDateParam(r, "endDate")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}

	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	serviceReq := &models.GetBusinessBookingsRequest{
		UserID:          userID,
		BusinessID:      businessID,
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          statusPtr,
		IncludeInactive: includeInactive,
	}

	result, err := h.service.GetBusinessBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/bookings - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{id}/bookings - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/bookings - Invalid filter: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /businesses/{id}/bookings - Failed to get bookings: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/bookings - Bookings retrieved successfully: business_id=%d, count=%d",
		businessID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}

	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
