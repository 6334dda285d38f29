package models

import (
	"errors"
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение истории бронирований пользователя
type GetUserBookingsRequest struct {
	UserID     int64   `json:"userId"`
	Status     *string `json:"status,omitempty"`     // Фильтр по статусу (опционально)
	BusinessID *int64  `json:"businessId,omitempty"` // Фильтр по бизнесу (опционально)
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetUserBookingsRequest) ToDomainFilter() (domain.UserBookingsFilter, error) {
	filter := domain.UserBookingsFilter{
		UserID:     r.UserID,
		BusinessID: r.BusinessID,
		Limit:      r.Limit,
		Offset:     r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetBusinessBookingsRequest запрос на получение бронирований бизнеса
type GetBusinessBookingsRequest struct {
	UserID          int64      `json:"userId"`
	BusinessID      int64      `json:"businessId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и no_show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessBookingsRequest) ToDomainFilter() (domain.BusinessBookingsFilter, error) {
	filter := domain.BusinessBookingsFilter{
		BusinessID:      r.BusinessID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// Response модели

// CustomerResponse контактные данные клиента на момент бронирования
type CustomerResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	BusinessID int64  `json:"businessId"`
	ServiceID  *int64 `json:"serviceId,omitempty"`

	BookingDate     string `json:"bookingDate"` // "2026-03-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	TotalAmount float64          `json:"totalAmount"`
	Customer    CustomerResponse `json:"customer"`
	Notes       *string          `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований и пагинацией.
// Total считается из того же фильтра, что и страница.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit,omitempty"`
	Offset   int               `json:"offset,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		BusinessID:      b.BusinessID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		TotalAmount:     b.TotalAmount,
		Customer: CustomerResponse{
			Name:  b.Customer.Name,
			Phone: b.Customer.Phone,
			Email: b.Customer.Email,
		},
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		if resp := FromDomainBooking(booking); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
