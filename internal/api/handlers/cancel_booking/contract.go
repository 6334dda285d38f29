package cancel_booking

import (
	"context"

	cancelBooking "github.com/CAJINC/buy-locals-booking/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
