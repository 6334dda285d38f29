package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	directoryClient "github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/notifier"
	"github.com/CAJINC/buy-locals-booking/pkg/ptr"
	"github.com/CAJINC/buy-locals-booking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	directory    DirectoryClient
	cache        AvailabilityCache
	notifier     NotifierClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	directory DirectoryClient,
	cache AvailabilityCache,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		directory:    directory,
		cache:        cache,
		notifier:     notifierClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Сетевые вызовы (справочник бизнесов) выполняются ДО открытия транзакции:
// пока держится блокировка строк, никаких внешних вызовов не происходит.
// Проверка конфликтов и вставка идут в одной сериализуемой транзакции -
// конкурентное создание пересекающегося бронирования на тот же бизнес
// блокируется на FOR UPDATE до коммита первой транзакции и после
// разблокировки корректно отклоняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, business=%d, scheduledAt=%s, duration=%d",
		req.UserID, req.BusinessID, req.ScheduledAt.Format("2006-01-02 15:04"), req.DurationMinutes)

	// 1. Текущее время и валидация входных данных
	now := uc.timeProvider.Now()

	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес из справочника
	business, err := uc.directory.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsActive {
		uc.logger.Warn("CreateBooking: business id=%d is not accepting bookings", req.BusinessID)
		return nil, ErrBusinessInactive
	}

	// 3. Если услуга указана - проверяем, что бизнес её предоставляет.
	// Расхождение длительности с настройкой услуги не блокирует бронирование,
	// только предупреждение в логах.
	if req.ServiceID != nil {
		service := business.FindService(*req.ServiceID)
		if service == nil {
			uc.logger.Warn("CreateBooking: service id=%d not found at business id=%d", *req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotAvailable
		}
		if service.DurationMinutes != nil && *service.DurationMinutes != req.DurationMinutes {
			uc.logger.Warn("CreateBooking: requested duration %d differs from configured %d for service id=%d",
				req.DurationMinutes, *service.DurationMinutes, *req.ServiceID)
		}
	}

	// 4. Валидация окна бронирования: nil в справочнике = дефолт движка,
	// явный ноль уважается
	minAdvanceHours := ptr.Value(business.MinAdvanceBookingHours, domain.DefaultMinAdvanceBookingHours)
	maxAdvanceDays := ptr.Value(business.MaxAdvanceBookingDays, domain.DefaultMaxAdvanceBookingDays)

	if err := validateBookingWindow(req.ScheduledAt, now, minAdvanceHours, maxAdvanceDays); err != nil {
		uc.logger.Warn("CreateBooking: booking window validation failed: %v", err)
		return nil, err
	}

	// 5. Валидация рабочих часов: интервал целиком внутри open/close
	schedule := getWorkingHoursForDay(business, req.Date())
	if err := validateBusinessHours(schedule, req.StartTime(), req.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: business hours validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 6. Проверка конфликтов и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Пересекающиеся активные бронирования с блокировкой FOR UPDATE
		conflicts, err := uc.bookingRepo.GetConflicting(
			txCtx, req.BusinessID, req.Date(), req.StartTime().String(), req.DurationMinutes, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}

		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: slot not available, %d conflicting booking(s) for business=%d",
				len(conflicts), req.BusinessID)
			return ErrSlotNotAvailable
		}

		// 6.2. Создаем бронирование; жизненный цикл всегда начинается с pending
		booking := &domain.Booking{
			UserID:          req.UserID,
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date(),
			StartTime:       req.StartTime(),
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusPending,
			TotalAmount:     req.TotalAmount,
			Customer:        req.Customer,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 6.3. Инвалидируем кеш доступности синхронно в этой же операции
		uc.cache.Invalidate(txCtx, req.BusinessID, req.Date())

		result = created
		return nil
	})

	if err != nil {
		// Гонка за первые пересекающиеся бронирования: конфликтов ещё нет,
		// FOR UPDATE нечего блокировать, обе транзакции вставляют, и Postgres
		// откатывает одну на коммите. Для клиента это обычный занятый слот.
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization failure for business=%d, slot taken concurrently",
				req.BusinessID)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 7. Уведомление строго после коммита; сбой не влияет на результат
	uc.dispatchNotification(ctx, result)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		BusinessID:      result.BusinessID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		TotalAmount:     result.TotalAmount,
		Customer:        result.Customer,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// dispatchNotification отправляет событие о созданном бронировании
func (uc *UseCase) dispatchNotification(ctx context.Context, booking *domain.Booking) {
	event := &notifier.BookingEvent{
		Event:      notifier.EventBookingCreated,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		BusinessID: booking.BusinessID,
		Date:       booking.BookingDate.Format(domain.DateFormat),
		StartTime:  booking.StartTime.String(),
	}

	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to notify about booking id=%d: %v", booking.ID, err)
	}
}
