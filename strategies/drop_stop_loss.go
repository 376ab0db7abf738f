package strategies

import "stockbt/market"

var _ SellSignaler = (*DropStopLoss)(nil)

// DropStopLoss is a sell-only exit strategy with two stop lines:
//
//  1. total loss vs the position's average cost of 3% or more forces a sell,
//     regardless of the day's direction (highest priority);
//  2. otherwise an up day is always held, and a down day is sold only when
//     the intraday drop exceeds 2%.
type DropStopLoss struct {
	DailyStopLoss float64 // intraday open-to-close drop, fraction
	TotalStopLoss float64 // loss vs average cost, fraction
}

func NewDropStopLoss() *DropStopLoss {
	return &DropStopLoss{
		DailyStopLoss: 0.02,
		TotalStopLoss: 0.03,
	}
}

func (s *DropStopLoss) Name() string {
	return "drop-stop-loss"
}

func (s *DropStopLoss) Initialize() error {
	return nil
}

func (s *DropStopLoss) Capability() Capability {
	return CanSell
}

// OnBar is a no-op: both stop lines are computable from the current bar and
// the holding snapshot alone.
func (s *DropStopLoss) OnBar(_ market.Bar) {}

func (s *DropStopLoss) ShouldSell(_ string, bar market.Bar, h Holding) bool {
	if bar.Open <= 0 || bar.Close <= 0 {
		return false
	}

	if h.AvgCost > 0 {
		total := (bar.Close - h.AvgCost) / h.AvgCost
		if total <= -s.TotalStopLoss {
			return true
		}
	}

	daily := (bar.Close - bar.Open) / bar.Open
	if daily >= 0 {
		return false
	}
	return -daily > s.DailyStopLoss
}
