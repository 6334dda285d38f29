package domain

import (
	"math"
	"time"
)

// RefundTier identifies which cancellation-policy tier applies
type RefundTier string

const (
	RefundTierFull    RefundTier = "full"
	RefundTierPartial RefundTier = "partial"
	RefundTierNone    RefundTier = "no-refund"
)

// Notice-period thresholds of the cancellation policy, in hours.
// Business-specific overrides are an extension point, not supported yet.
const (
	FullRefundNoticeHours    = 24
	PartialRefundNoticeHours = 2
)

// RefundQuote is the computed outcome of the cancellation policy.
// Actual refund execution belongs to the payment collaborator.
type RefundQuote struct {
	Amount  float64
	Tier    RefundTier
	Message string
}

// ComputeRefund applies the time-based cancellation policy:
//   - >= 24h notice: full refund
//   - 2h..24h notice: 50% refund
//   - < 2h notice: no refund
//
// A negative notice period (cancelling after the scheduled time) falls into
// the no-refund tier. That is a policy choice, not a validation error.
func ComputeRefund(totalAmount float64, scheduledAt, now time.Time) RefundQuote {
	hoursUntil := scheduledAt.Sub(now).Hours()

	switch {
	case hoursUntil >= FullRefundNoticeHours:
		return RefundQuote{
			Amount:  roundMoney(totalAmount),
			Tier:    RefundTierFull,
			Message: "full refund: cancelled more than 24 hours in advance",
		}
	case hoursUntil >= PartialRefundNoticeHours:
		return RefundQuote{
			Amount:  roundMoney(totalAmount * 0.5),
			Tier:    RefundTierPartial,
			Message: "partial refund (50%): cancelled between 2 and 24 hours in advance",
		}
	default:
		return RefundQuote{
			Amount:  0,
			Tier:    RefundTierNone,
			Message: "no refund: cancelled less than 2 hours in advance",
		}
	}
}

// roundMoney rounds to 2 fractional digits, the precision of totalAmount
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
