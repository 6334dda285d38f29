package directory

// Business модель бизнеса из справочника
type Business struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`

	// Владелец бизнеса; используется для проверки прав на просмотр
	// бронирований бизнеса и управление их статусами
	OwnerUserID int64 `json:"owner_user_id"`

	WorkingHours WorkingHours `json:"working_hours"`

	// Ограничения окна бронирования. nil = значение не задано бизнесом,
	// применяется дефолт движка. Явный ноль уважается как есть.
	MinAdvanceBookingHours *int `json:"min_advance_booking_hours"`
	MaxAdvanceBookingDays  *int `json:"max_advance_booking_days"`
	DefaultBufferMinutes   *int `json:"default_buffer_minutes"`

	Services []Service `json:"services"`
}

// Service модель услуги бизнеса
type Service struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Переопределения на уровне услуги; nil = использовать дефолт бизнеса
	DurationMinutes *int     `json:"duration_minutes"`
	BufferMinutes   *int     `json:"buffer_minutes"`
	Price           *float64 `json:"price"`
}

// WorkingHours расписание работы бизнеса по дням недели
type WorkingHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time"`  // "09:00"
	CloseTime *string `json:"close_time"` // "17:00"
}

// FindService ищет услугу бизнеса по ID
func (b *Business) FindService(serviceID int64) *Service {
	for i := range b.Services {
		if b.Services[i].ID == serviceID {
			return &b.Services[i]
		}
	}
	return nil
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
