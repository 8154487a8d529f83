package report

import (
	"fmt"
	"time"

	"github.com/snacktrackhq/snacktrack/internal/order"
)

// NoTopSnack is the placeholder shown when nothing sold today.
const NoTopSnack = "N/A"

// DailySummary is the end-of-day digest pushed to the owner's chat.
type DailySummary struct {
	Date            string `json:"date"`
	TodayEarnings   int64  `json:"today_earnings"`
	TotalPaidOrders int    `json:"total_paid_orders"`
	PendingOrders   int    `json:"pending_orders"`
	TopSnack        string `json:"top_snack"`
}

// BuildDailySummary folds the orders of a single venue day into the
// digest. Earnings count paid orders only; pending counts today's
// unpaid ones.
func BuildDailySummary(orders []*order.Order, now time.Time, loc *time.Location) DailySummary {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	s := DailySummary{
		Date:     order.DayKey(now, loc),
		TopSnack: NoTopSnack,
	}

	// Top snack considers paid orders only, like the earnings figure.
	snackQty := make(map[string]int)
	for _, o := range orders {
		if o.CreatedAt.In(loc).Before(dayStart) {
			continue
		}
		if !o.PaymentDone {
			s.PendingOrders++
			continue
		}
		s.TodayEarnings += o.TotalAmount
		s.TotalPaidOrders++
		for _, item := range o.Items {
			snackQty[item.Name] += item.Qty
		}
	}

	best := 0
	for name, qty := range snackQty {
		if qty > best || (qty == best && best > 0 && name < s.TopSnack) {
			best = qty
			s.TopSnack = name
		}
	}

	return s
}

// FormatMessage renders the digest as the plain-text chat message.
func (s DailySummary) FormatMessage() string {
	return fmt.Sprintf(
		"Daily Summary (%s)\n\nEarnings: Rs. %d\nPaid orders: %d\nPending orders: %d\nTop snack: %s",
		s.Date, s.TodayEarnings, s.TotalPaidOrders, s.PendingOrders, s.TopSnack,
	)
}
