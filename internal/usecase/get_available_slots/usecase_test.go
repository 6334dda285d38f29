package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	"github.com/CAJINC/buy-locals-booking/pkg/ptr"
	"github.com/CAJINC/buy-locals-booking/pkg/types"
)

type repoStub struct {
	getForDateFn func(ctx context.Context, businessID int64, date time.Time) ([]*domain.Booking, error)
}

func (s *repoStub) GetForDate(ctx context.Context, businessID int64, date time.Time) ([]*domain.Booking, error) {
	return s.getForDateFn(ctx, businessID, date)
}

type directoryStub struct {
	getBusinessFn func(ctx context.Context, businessID int64) (*directory.Business, error)
	calls         int
}

func (s *directoryStub) GetBusiness(ctx context.Context, businessID int64) (*directory.Business, error) {
	s.calls++
	return s.getBusinessFn(ctx, businessID)
}

type cacheStub struct {
	entries map[string][]domain.TimeSlot
	puts    int
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: make(map[string][]domain.TimeSlot)}
}

func (s *cacheStub) key(businessID int64, date time.Time, variant string) string {
	return date.Format(domain.DateFormat) + "/" + variant
}

func (s *cacheStub) Get(ctx context.Context, businessID int64, date time.Time, variant string) ([]domain.TimeSlot, bool) {
	slots, ok := s.entries[s.key(businessID, date, variant)]
	return slots, ok
}

func (s *cacheStub) Put(ctx context.Context, businessID int64, date time.Time, variant string, slots []domain.TimeSlot) {
	s.puts++
	s.entries[s.key(businessID, date, variant)] = slots
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func alwaysOpenBusiness() *directory.Business {
	schedule := directory.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("17:00"),
	}
	return &directory.Business{
		ID:       1,
		Name:     "Test Salon",
		IsActive: true,
		WorkingHours: directory.WorkingHours{
			Monday: schedule, Tuesday: schedule, Wednesday: schedule,
			Thursday: schedule, Friday: schedule, Saturday: schedule, Sunday: schedule,
		},
		Services: []directory.Service{
			{
				ID:              10,
				Name:            "Haircut",
				DurationMinutes: ptr.Ptr(60),
				BufferMinutes:   ptr.Ptr(15),
				Price:           ptr.Ptr(25.00),
			},
		},
	}
}

func TestExecuteComputesAndCachesOnMiss(t *testing.T) {
	repo := &repoStub{
		getForDateFn: func(ctx context.Context, businessID int64, date time.Time) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{StartTime: types.TimeString("10:15"), DurationMinutes: 60, Status: domain.StatusConfirmed},
			}, nil
		},
	}
	dir := &directoryStub{
		getBusinessFn: func(ctx context.Context, businessID int64) (*directory.Business, error) {
			return alwaysOpenBusiness(), nil
		},
	}
	cache := newCacheStub()

	uc := NewUseCase(repo, dir, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		Date:       time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		ServiceID:  ptr.Ptr(int64(10)),
	})
	require.NoError(t, err)

	// Слот 10:15 занят подтверждённым бронированием
	starts := slotStarts(resp.Slots)
	assert.Equal(t, []string{"09:00", "11:30", "12:45", "14:00", "15:15"}, starts)

	assert.Equal(t, 1, dir.calls)
	assert.Equal(t, 1, cache.puts)
}

func TestExecuteServesFromCache(t *testing.T) {
	dir := &directoryStub{
		getBusinessFn: func(ctx context.Context, businessID int64) (*directory.Business, error) {
			t.Fatal("directory must not be called on cache hit")
			return nil, nil
		},
	}
	cache := newCacheStub()
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	cached := []domain.TimeSlot{
		{StartTime: "09:00", EndTime: "10:00", DurationMinutes: 60, IsAvailable: true},
	}
	cache.Put(context.Background(), 1, date, "all:default", cached)

	uc := NewUseCase(&repoStub{}, dir, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: date})
	require.NoError(t, err)
	assert.Equal(t, cached, resp.Slots)
	assert.Equal(t, 0, dir.calls)
}

func TestExecuteClosedDayReturnsEmpty(t *testing.T) {
	business := alwaysOpenBusiness()
	business.WorkingHours.Monday = directory.DaySchedule{IsOpen: false}

	dir := &directoryStub{
		getBusinessFn: func(ctx context.Context, businessID int64) (*directory.Business, error) {
			return business, nil
		},
	}
	uc := NewUseCase(&repoStub{}, dir, newCacheStub(), nopLogger{})

	// 2026-03-16 - понедельник
	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		Date:       time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteBusinessNotFound(t *testing.T) {
	dir := &directoryStub{
		getBusinessFn: func(ctx context.Context, businessID int64) (*directory.Business, error) {
			return nil, directory.ErrBusinessNotFound
		},
	}
	uc := NewUseCase(&repoStub{}, dir, newCacheStub(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 404,
		Date:       time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecuteUnknownService(t *testing.T) {
	dir := &directoryStub{
		getBusinessFn: func(ctx context.Context, businessID int64) (*directory.Business, error) {
			return alwaysOpenBusiness(), nil
		},
	}
	uc := NewUseCase(&repoStub{}, dir, newCacheStub(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		Date:       time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		ServiceID:  ptr.Ptr(int64(999)),
	})
	assert.ErrorIs(t, err, ErrServiceNotAvailable)
}

func TestExecuteValidation(t *testing.T) {
	uc := NewUseCase(&repoStub{}, &directoryStub{}, newCacheStub(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		BusinessID:      1,
		Date:            time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		DurationMinutes: ptr.Ptr(5),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
