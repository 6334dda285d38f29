package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	bookingRepo "github.com/CAJINC/buy-locals-booking/internal/infra/storage/booking"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/notifier"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	cache        AvailabilityCache
	notifier     NotifierClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo BookingRepository,
	cache AvailabilityCache,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  repo,
		cache:        cache,
		notifier:     notifierClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования.
//
// Строка блокируется на всё время транзакции (GetByIDForUpdate), поэтому
// конкурентные отмены/обновления одного бронирования сериализуются и
// повторная отмена корректно отклоняется проверкой статуса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result *domain.Booking
		quote  domain.RefundQuote
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем строку бронирования
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to lock booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to lock booking: %v", ErrInternal, err)
		}

		// 2. Отменить можно только своё бронирование
		if booking.UserID != req.UserID {
			uc.logger.Warn("CancelBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		// 3. Терминальные статусы отменить нельзя
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d cannot be cancelled, status=%s",
				req.BookingID, booking.Status)
			return ErrCannotCancel
		}

		// 4. Расчёт возврата по времени до начала услуги.
		// Отрицательный notice period (отмена после начала) попадает в
		// тир без возврата - это политика, а не ошибка.
		scheduledAt, err := booking.ScheduledAt()
		if err != nil {
			uc.logger.Error("CancelBooking: failed to compute scheduled time for booking id=%d: %v",
				req.BookingID, err)
			return fmt.Errorf("%w: failed to compute scheduled time: %v", ErrInternal, err)
		}
		quote = domain.ComputeRefund(booking.TotalAmount, scheduledAt, now)

		// 5. Переводим в cancelled с причиной
		reason := ""
		if req.Reason != nil {
			reason = *req.Reason
		}
		if err := uc.bookingRepo.Cancel(txCtx, req.BookingID, reason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				// Не должно случаться под блокировкой, но проверяем
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 6. Инвалидируем кеш доступности: слот снова свободен
		uc.cache.Invalidate(txCtx, booking.BusinessID, booking.BookingDate)

		// Отражаем переход в возвращаемой копии
		booking.Status = domain.StatusCancelled
		booking.CancelledAt = &now
		if reason != "" {
			booking.CancellationReason = &reason
		}
		result = booking

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled, refund=%.2f (%s)",
		req.BookingID, quote.Amount, quote.Tier)

	// 7. Уведомление строго после коммита; сбой не влияет на результат
	uc.dispatchNotification(ctx, result, quote)

	return &Response{
		Booking:      result,
		RefundAmount: quote.Amount,
		RefundTier:   quote.Tier,
		Message:      quote.Message,
	}, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}

// dispatchNotification отправляет событие об отменённом бронировании
func (uc *UseCase) dispatchNotification(ctx context.Context, booking *domain.Booking, quote domain.RefundQuote) {
	event := &notifier.BookingEvent{
		Event:        notifier.EventBookingCancelled,
		BookingID:    booking.ID,
		UserID:       booking.UserID,
		BusinessID:   booking.BusinessID,
		Date:         booking.BookingDate.Format(domain.DateFormat),
		StartTime:    booking.StartTime.String(),
		RefundAmount: &quote.Amount,
		Reason:       booking.CancellationReason,
	}

	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.logger.Error("CancelBooking: failed to notify about booking id=%d: %v", booking.ID, err)
	}
}
