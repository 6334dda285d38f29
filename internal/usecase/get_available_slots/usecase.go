package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/infra/cache/availability"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	"github.com/CAJINC/buy-locals-booking/pkg/ptr"
)

// UseCase use case для получения доступных слотов бизнеса на дату
type UseCase struct {
	bookingRepo BookingRepository
	directory   DirectoryClient
	cache       AvailabilityCache
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo BookingRepository,
	directoryClient DirectoryClient,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: repo,
		directory:   directoryClient,
		cache:       cache,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов.
//
// Сначала проверяется кеш; при промахе слоты рассчитываются из расписания
// бизнеса и активных бронирований, и результат кладётся в кеш. Кеш никогда
// не авторитетен: финальную проверку конфликтов выполняет создание
// бронирования под блокировкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	variant := availability.VariantKey(req.ServiceID, req.DurationMinutes)

	// 1. Проверяем кеш
	if slots, ok := uc.cache.Get(ctx, req.BusinessID, req.Date, variant); ok {
		uc.logger.Info("GetAvailableSlots: cache hit for business=%d, date=%s, variant=%s",
			req.BusinessID, req.Date.Format(domain.DateFormat), variant)
		return uc.buildResponse(req, slots), nil
	}

	// 2. Промах: получаем бизнес из справочника
	business, err := uc.directory.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, directory.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Разрешаем эффективные параметры слота с учётом услуги
	durationMinutes, bufferMinutes, price, err := uc.resolveSlotParams(req, business)
	if err != nil {
		return nil, err
	}

	// 4. Закрытый день - пустой список, не ошибка
	schedule := scheduleForWeekday(business.WorkingHours, req.Date)
	candidates, err := generateCandidateSlots(schedule, durationMinutes, bufferMinutes, price, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 5. Исключаем слоты, занятые активными бронированиями
	if len(candidates) > 0 {
		bookings, err := uc.bookingRepo.GetForDate(ctx, req.BusinessID, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get bookings for business id=%d: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		candidates = markUnavailableSlots(candidates, bookings)
	}

	slots := availableOnly(candidates)

	// 6. Кешируем рассчитанный результат (ошибки кеша проглатываются)
	uc.cache.Put(ctx, req.BusinessID, req.Date, variant, slots)

	uc.logger.Info("GetAvailableSlots: computed %d slots for business=%d, date=%s, variant=%s",
		len(slots), req.BusinessID, req.Date.Format(domain.DateFormat), variant)

	return uc.buildResponse(req, slots), nil
}

// resolveSlotParams разрешает длительность, буфер и цену слота:
// явный параметр запроса > переопределение услуги > дефолт бизнеса > дефолт движка
func (uc *UseCase) resolveSlotParams(req *Request, business *directory.Business) (int, int, float64, error) {
	durationMinutes := domain.DefaultSlotDurationMinutes
	bufferMinutes := ptr.Value(business.DefaultBufferMinutes, domain.DefaultBufferMinutes)
	price := 0.0

	if req.ServiceID != nil {
		service := business.FindService(*req.ServiceID)
		if service == nil {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found at business id=%d",
				*req.ServiceID, business.ID)
			return 0, 0, 0, ErrServiceNotAvailable
		}
		durationMinutes = ptr.Value(service.DurationMinutes, durationMinutes)
		bufferMinutes = ptr.Value(service.BufferMinutes, bufferMinutes)
		price = ptr.Value(service.Price, price)
	}

	if req.DurationMinutes != nil {
		durationMinutes = *req.DurationMinutes
	}

	return durationMinutes, bufferMinutes, price, nil
}

func (uc *UseCase) buildResponse(req *Request, slots []domain.TimeSlot) *Response {
	return &Response{
		BusinessID: req.BusinessID,
		Date:       req.Date,
		ServiceID:  req.ServiceID,
		Slots:      slots,
	}
}
