package get_available_slots

import (
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	getAvailableSlots "github.com/CAJINC/buy-locals-booking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BusinessID int64           `json:"businessId"`
	Date       string          `json:"date"`
	ServiceID  *int64          `json:"serviceId,omitempty"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Price:           slot.Price,
		}
	}

	return &AvailableSlotsResponse{
		BusinessID: resp.BusinessID,
		Date:       resp.Date.Format(domain.DateFormat),
		ServiceID:  resp.ServiceID,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(businessID int64, dateStr string, serviceID *int64, durationMinutes *int) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID:      businessID,
		Date:            date,
		ServiceID:       serviceID,
		DurationMinutes: durationMinutes,
	}, nil
}
