package create_booking

import (
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	createBooking "github.com/CAJINC/buy-locals-booking/internal/usecase/create_booking"
)

// CustomerPayload контактные данные клиента в запросе
type CustomerPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID      int64           `json:"businessId"`
	ServiceID       *int64          `json:"serviceId,omitempty"`
	ScheduledAt     string          `json:"scheduledAt"` // RFC3339: "2026-03-15T10:00:00Z"
	DurationMinutes int             `json:"durationMinutes"`
	TotalAmount     float64         `json:"totalAmount"`
	Customer        CustomerPayload `json:"customer"`
	Notes           *string         `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	BusinessID      int64           `json:"businessId"`
	ServiceID       *int64          `json:"serviceId,omitempty"`
	BookingDate     string          `json:"bookingDate"`
	StartTime       string          `json:"startTime"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status"`
	TotalAmount     float64         `json:"totalAmount"`
	Customer        CustomerPayload `json:"customer"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		BusinessID:      r.BusinessID,
		ServiceID:       r.ServiceID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: r.DurationMinutes,
		TotalAmount:     r.TotalAmount,
		Customer: domain.CustomerInfo{
			Name:  r.Customer.Name,
			Phone: r.Customer.Phone,
			Email: r.Customer.Email,
		},
		Notes: r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		TotalAmount:     resp.TotalAmount,
		Customer: CustomerPayload{
			Name:  resp.Customer.Name,
			Phone: resp.Customer.Phone,
			Email: resp.Customer.Email,
		},
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
