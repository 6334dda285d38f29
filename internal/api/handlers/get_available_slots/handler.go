package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/CAJINC/buy-locals-booking/internal/api/handlers"
	getAvailableSlots "github.com/CAJINC/buy-locals-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidDuration     = "некорректная длительность"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBusinessNotFound    = "бизнес не найден"
	msgServiceNotAvailable = "услуга недоступна в этом бизнесе"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-slots
// Query params: date (required, YYYY-MM-DD), serviceId (optional),
// duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	var serviceID *int64
	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		id, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		serviceID = &id
	}

	var durationMinutes *int
	if durationStr := r.URL.Query().Get("duration"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		durationMinutes = &duration
	}

	useCaseReq, err := ToUseCaseRequest(businessID, dateStr, serviceID, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/available-slots - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotAvailable):
			h.logger.Warn("GET /businesses/{id}/available-slots - Service not available: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgServiceNotAvailable)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /businesses/{id}/available-slots - Failed to get slots: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/available-slots - Slots retrieved successfully: business_id=%d, date=%s, slots_count=%d",
		businessID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
