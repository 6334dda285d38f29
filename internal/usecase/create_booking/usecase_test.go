package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	"github.com/CAJINC/buy-locals-booking/internal/integrations/notifier"
	"github.com/CAJINC/buy-locals-booking/pkg/ptr"
)

type repoFake struct {
	conflicts []*domain.Booking
	created   *domain.Booking
}

func (f *repoFake) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = 101
	created.CreatedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *repoFake) GetConflicting(ctx context.Context, businessID int64, date time.Time, startTime string, durationMinutes int, excludeBookingID *int64) ([]*domain.Booking, error) {
	return f.conflicts, nil
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

type notifierFake struct {
	events []*notifier.BookingEvent
}

func (f *notifierFake) Notify(ctx context.Context, event *notifier.BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}

// txFake выполняет колбэк без настоящей транзакции;
// commitErr имитирует сбой на коммите после успешного колбэка
type txFake struct {
	calls     int
	commitErr error
}

func (f *txFake) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBusiness() *directory.Business {
	schedule := directory.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("17:00"),
	}
	return &directory.Business{
		ID:       2,
		Name:     "Test Barbershop",
		IsActive: true,
		WorkingHours: directory.WorkingHours{
			Monday: schedule, Tuesday: schedule, Wednesday: schedule,
			Thursday: schedule, Friday: schedule, Saturday: schedule, Sunday: schedule,
		},
		Services: []directory.Service{
			{ID: 10, Name: "Haircut", DurationMinutes: ptr.Ptr(60)},
		},
	}
}

type fixture struct {
	repo     *repoFake
	dir      *directoryFake
	cache    *cacheFake
	notifier *notifierFake
	tx       *txFake
	uc       *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		repo:     &repoFake{},
		dir:      &directoryFake{business: testBusiness()},
		cache:    &cacheFake{},
		notifier: &notifierFake{},
		tx:       &txFake{},
	}
	f.uc = NewUseCase(f.repo, f.dir, f.cache, f.notifier, f.tx, nopLogger{})
	f.uc.timeProvider = fixedClock{now}
	return f
}

func TestExecuteSuccess(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := &Request{
		UserID:          1,
		BusinessID:      2,
		ServiceID:       ptr.Ptr(int64(10)),
		ScheduledAt:     time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		TotalAmount:     50.00,
		Customer:        domain.CustomerInfo{Name: "Jane Doe", Phone: "+1234567890"},
	}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Жизненный цикл всегда начинается с pending
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "2026-03-12", resp.BookingDate.Format(domain.DateFormat))

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{"2026-03-12"}, f.cache.invalidations)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, notifier.EventBookingCreated, f.notifier.events[0].Event)
	assert.Equal(t, int64(101), f.notifier.events[0].BookingID)
}

func TestExecuteSlotConflict(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.repo.conflicts = []*domain.Booking{
		{ID: 55, StartTime: "10:30", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	req := &Request{
		UserID:          1,
		BusinessID:      2,
		ScheduledAt:     time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.Nil(t, f.repo.created)
	assert.Empty(t, f.cache.invalidations)
	assert.Empty(t, f.notifier.events)
}

func TestExecuteSerializationFailure(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// Две транзакции гонятся за первые пересекающиеся бронирования:
	// конфликтов в выборке нет, Postgres откатывает проигравшую на коммите.
	// Для клиента это занятый слот, а не внутренняя ошибка.
	f.tx.commitErr = fmt.Errorf("txmanager: commit: %w", &pq.Error{Code: "40001"})

	req := &Request{
		UserID:          1,
		BusinessID:      2,
		ScheduledAt:     time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.notifier.events)
}

func TestExecuteBusinessNotFound(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.dir.err = directory.ErrBusinessNotFound

	req := &Request{
		UserID:          1,
		BusinessID:      404,
		ScheduledAt:     time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
	assert.Equal(t, 0, f.tx.calls)
}

func TestExecuteBusinessInactive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.dir.business.IsActive = false

	req := &Request{
		UserID:          1,
		BusinessID:      2,
		ScheduledAt:     time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessInactive)
}

func TestExecuteUnknownService(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := &Request{
		UserID:          1,
		BusinessID:      2,
		ServiceID:       ptr.Ptr(int64(999)),
		ScheduledAt:     time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotAvailable)
}

func TestExecuteMinAdvanceWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// Дефолтное окно движка: минимум 2 часа до начала
	req := &Request{
		UserID:          1,
		BusinessID:      2,
		ScheduledAt:     now.Add(90 * time.Minute),
		DurationMinutes: 60,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecuteExplicitZeroAdvanceWindowHonored(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.dir.business.MinAdvanceBookingHours = ptr.Ptr(0)

	req := &Request{
		UserID:          1,
		BusinessID:      2,
		ScheduledAt:     now.Add(30 * time.Minute),
		DurationMinutes: 60,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecuteClosedDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.dir.business.WorkingHours.Thursday = directory.DaySchedule{IsOpen: false}

	// 2026-03-12 - четверг
	req := &Request{
		UserID:          1,
		BusinessID:      2,
		ScheduledAt:     time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessClosed)
}

func TestExecuteOutsideBusinessHours(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := &Request{
		UserID:          1,
		BusinessID:      2,
		ScheduledAt:     time.Date(2026, 3, 12, 16, 30, 0, 0, time.UTC),
		DurationMinutes: 60,
		Customer:        domain.CustomerInfo{Name: "Jane Doe"},
	}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}
