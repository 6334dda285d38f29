package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	bookingRepo "github.com/CAJINC/buy-locals-booking/internal/infra/storage/booking"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	"github.com/CAJINC/buy-locals-booking/internal/service/bookings/models"
	"github.com/CAJINC/buy-locals-booking/pkg/ptr"
	"github.com/CAJINC/buy-locals-booking/pkg/types"
)

type repoFake struct {
	booking       *domain.Booking
	getErr        error
	list          []*domain.Booking
	total         int64
	updatedStatus *domain.BookingStatus
}

func (f *repoFake) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *repoFake) ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, int64, error) {
	return f.list, f.total, nil
}

func (f *repoFake) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *repoFake) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	f.updatedStatus = &status
	return nil
}

type directoryFake struct {
	business *directory.Business
	err      error
}

func (f *directoryFake) GetBusiness(ctx context.Context, businessID int64) (*directory.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.business, nil
}

type cacheFake struct {
	invalidations []string
}

func (f *cacheFake) Invalidate(ctx context.Context, businessID int64, date time.Time) {
	f.invalidations = append(f.invalidations, date.Format(domain.DateFormat))
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:              7,
		UserID:          1,
		BusinessID:      2,
		BookingDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
		TotalAmount:     100.00,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}
}

func ownedBusiness(ownerID int64) *directory.Business {
	return &directory.Business{ID: 2, Name: "Test Salon", IsActive: true, OwnerUserID: ownerID}
}

func TestGetByIDOwner(t *testing.T) {
	repo := &repoFake{booking: sampleBooking()}
	svc := NewService(repo, &directoryFake{business: ownedBusiness(50)}, &cacheFake{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2026-03-15", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestGetByIDBusinessOwner(t *testing.T) {
	repo := &repoFake{booking: sampleBooking()}
	svc := NewService(repo, &directoryFake{business: ownedBusiness(50)}, &cacheFake{}, nopLogger{})

	// Владелец бизнеса видит чужое бронирование своего бизнеса
	_, err := svc.GetByID(context.Background(), 7, 50)
	require.NoError(t, err)
}

func TestGetByIDAccessDenied(t *testing.T) {
	repo := &repoFake{booking: sampleBooking()}
	svc := NewService(repo, &directoryFake{business: ownedBusiness(50)}, &cacheFake{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 7, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := &repoFake{getErr: bookingRepo.ErrBookingNotFound}
	svc := NewService(repo, &directoryFake{}, &cacheFake{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404, 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookingsPagination(t *testing.T) {
	repo := &repoFake{list: []*domain.Booking{sampleBooking()}, total: 42}
	svc := NewService(repo, &directoryFake{}, &cacheFake{}, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 1,
		Limit:  20,
		Offset: 0,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(42), resp.Total)
	assert.Equal(t, 20, resp.Limit)
}

func TestGetUserBookingsInvalidStatus(t *testing.T) {
	svc := NewService(&repoFake{}, &directoryFake{}, &cacheFake{}, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 1,
		Status: ptr.Ptr("teleported"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBusinessBookingsOwnerOnly(t *testing.T) {
	repo := &repoFake{list: []*domain.Booking{sampleBooking()}}
	svc := NewService(repo, &directoryFake{business: ownedBusiness(50)}, &cacheFake{}, nopLogger{})

	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     50,
		BusinessID: 2,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     999,
		BusinessID: 2,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatusInvalidatesCache(t *testing.T) {
	repo := &repoFake{booking: sampleBooking()}
	cache := &cacheFake{}
	svc := NewService(repo, &directoryFake{business: ownedBusiness(50)}, cache, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: 50,
		Status: "confirmed",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
	assert.Equal(t, []string{"2026-03-15"}, cache.invalidations)
}

func TestUpdateStatusInvalid(t *testing.T) {
	repo := &repoFake{booking: sampleBooking()}
	svc := NewService(repo, &directoryFake{business: ownedBusiness(50)}, &cacheFake{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: 50,
		Status: "imaginary",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Nil(t, repo.updatedStatus)
}

func TestUpdateStatusAccessDenied(t *testing.T) {
	repo := &repoFake{booking: sampleBooking()}
	svc := NewService(repo, &directoryFake{business: ownedBusiness(50)}, &cacheFake{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: 999,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
