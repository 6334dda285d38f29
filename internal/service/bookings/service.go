package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	bookingRepo "github.com/CAJINC/buy-locals-booking/internal/infra/storage/booking"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	"github.com/CAJINC/buy-locals-booking/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и управления их статусами.
// Создание и отмена живут в отдельных usecase, так как требуют
// транзакций с блокировками и инвалидации кеша по своим правилам.
type Service struct {
	bookingRepo BookingRepository
	directory   DirectoryClient
	cache       AvailabilityCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	repo BookingRepository,
	directoryClient DirectoryClient,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: repo,
		directory:   directoryClient,
		cache:       cache,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования или владельцу бизнеса
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя с пагинацией
// Total считается из того же фильтра, что и страница, поэтому они согласованы
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, limit=%d, offset=%d",
		req.UserID, req.Limit, req.Offset)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status filter for user=%d", req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	list, total, err := s.bookingRepo.ListByUser(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d of %d bookings for user=%d", len(list), total, req.UserID)
	return &models.BookingListResponse{
		Bookings: models.FromDomainBookingList(list),
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}, nil
}

// GetBusinessBookings получает бронирования бизнеса с фильтрацией по
// периоду и статусу. Доступно только владельцу бизнеса.
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBusinessBookings: fetching bookings for business=%d, user=%d", req.BusinessID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	list, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: fetched %d bookings for business=%d", len(list), req.BusinessID)
	// Выборка по бизнесу не пагинирована, длина и есть полное количество.
	// При добавлении limit/offset здесь понадобится отдельный COUNT.
	return &models.BookingListResponse{
		Bookings: models.FromDomainBookingList(list),
		Total:    int64(len(list)),
	}, nil
}

// UpdateStatus обновляет статус бронирования (workflow бизнеса:
// confirmed, completed, no_show). Доступно только владельцу бизнеса.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerAccess(ctx, booking.BusinessID, req.UserID); err != nil {
		return err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return ErrInvalidStatus
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Переход в cancelled/no_show освобождает слот, обратный переход
	// занимает его снова. Сбрасываем кеш на дату при любой смене статуса.
	s.cache.Invalidate(ctx, booking.BusinessID, booking.BookingDate)

	s.logger.Info("UpdateStatus: booking id=%d updated to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет доступ к бронированию: владелец бронирования
// или владелец бизнеса
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, booking.BusinessID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем бизнеса
func (s *Service) checkOwnerAccess(ctx context.Context, businessID int64, userID int64) error {
	business, err := s.directory.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, directory.ErrBusinessNotFound) {
			s.logger.Warn("checkOwnerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get business: %v", ErrInternal, err)
	}

	if business.OwnerUserID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of business=%d", userID, businessID)
		return ErrAccessDenied
	}

	return nil
}
