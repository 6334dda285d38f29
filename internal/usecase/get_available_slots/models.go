package get_available_slots

import (
	"time"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID      int64     // ID бизнеса
	Date            time.Time // Дата для получения слотов (без времени)
	ServiceID       *int64    // ID услуги (опционально)
	DurationMinutes *int      // Переопределение длительности слота (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BusinessID int64             // ID бизнеса
	Date       time.Time         // Дата, на которую запрашивались слоты
	ServiceID  *int64            // ID услуги, если указана
	Slots      []domain.TimeSlot // Доступные слоты в порядке времени начала
}
