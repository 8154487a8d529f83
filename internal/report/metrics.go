package report

import (
	"sort"
	"strconv"
	"time"

	"github.com/snacktrackhq/snacktrack/internal/order"
)

// Dashboard is the full sales snapshot served to the owner. All money
// fields are whole rupees and only paid orders count as earnings.
type Dashboard struct {
	TodayEarnings   int64            `json:"today_earnings"`
	MonthEarnings   int64            `json:"month_earnings"`
	TotalEarnings   int64            `json:"total_earnings"`
	TodayOrders     int              `json:"today_orders"`
	TotalOrders     int              `json:"total_orders"`
	AvgOrderValue   int64            `json:"avg_order_value"`
	ConversionRate  int              `json:"conversion_rate"`
	Last7Days       []DayRevenue     `json:"last_7_days"`
	TopSnacks       []SnackCount     `json:"top_snacks"`
	TopRevenueItems []SnackRevenue   `json:"top_revenue_items"`
	PeakHours       []HourBucket     `json:"peak_hours"`
	PaymentStatus   PaymentBreakdown `json:"payment_status"`
}

// DayRevenue is one bar in the weekly revenue chart.
type DayRevenue struct {
	Label   string `json:"label"`
	Revenue int64  `json:"revenue"`
}

type SnackCount struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

type SnackRevenue struct {
	Name    string `json:"name"`
	Revenue int64  `json:"revenue"`
}

// HourBucket is one slot in the stall's working window, 8:00 through
// 22:00 inclusive.
type HourBucket struct {
	Label  string `json:"label"`
	Orders int    `json:"orders"`
}

type PaymentBreakdown struct {
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
}

const (
	openingHour   = 8
	closingHour   = 22
	topSnackMax   = 6
	topRevenueMax = 5
)

// BuildDashboard folds the full order history into the dashboard
// snapshot. Day and month boundaries follow the venue timezone.
func BuildDashboard(orders []*order.Order, now time.Time, loc *time.Location) Dashboard {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	weekStart := dayStart.AddDate(0, 0, -6)

	d := Dashboard{
		TotalOrders: len(orders),
	}

	dailyRevenue := make(map[string]int64)
	snackQty := make(map[string]int)
	snackRevenue := make(map[string]int64)
	snackOrder := make([]string, 0)
	hourCounts := make(map[int]int)

	var paidCount int
	for _, o := range orders {
		at := o.CreatedAt.In(loc)

		if !at.Before(dayStart) {
			d.TodayOrders++
		}

		if !o.PaymentDone {
			continue
		}
		paidCount++

		hourCounts[at.Hour()]++

		d.TotalEarnings += o.TotalAmount
		if !at.Before(monthStart) {
			d.MonthEarnings += o.TotalAmount
		}
		if !at.Before(dayStart) {
			d.TodayEarnings += o.TotalAmount
		}
		if !at.Before(weekStart) {
			dailyRevenue[order.DayKey(at, loc)] += o.TotalAmount
		}

		for _, item := range o.Items {
			if _, seen := snackQty[item.Name]; !seen {
				snackOrder = append(snackOrder, item.Name)
			}
			snackQty[item.Name] += item.Qty
			snackRevenue[item.Name] += item.Total
		}
	}

	d.PaymentStatus = PaymentBreakdown{
		Paid:    paidCount,
		Pending: len(orders) - paidCount,
	}

	if paidCount > 0 {
		d.AvgOrderValue = (d.TotalEarnings + int64(paidCount)/2) / int64(paidCount)
	}
	if len(orders) > 0 {
		d.ConversionRate = int(float64(paidCount)/float64(len(orders))*100 + 0.5)
	}

	d.Last7Days = buildLast7Days(dailyRevenue, dayStart, loc)
	d.TopSnacks = buildTopSnacks(snackQty, snackOrder)
	d.TopRevenueItems = buildTopRevenue(snackRevenue, snackOrder)
	d.PeakHours = buildPeakHours(hourCounts)

	return d
}

// buildLast7Days emits exactly seven entries, oldest first, zero-filled
// for days with no paid revenue.
func buildLast7Days(revenue map[string]int64, dayStart time.Time, loc *time.Location) []DayRevenue {
	days := make([]DayRevenue, 0, 7)
	for i := 6; i >= 0; i-- {
		day := dayStart.AddDate(0, 0, -i)
		days = append(days, DayRevenue{
			Label:   day.Format("Mon"),
			Revenue: revenue[order.DayKey(day, loc)],
		})
	}
	return days
}

// buildTopSnacks ranks snacks by units sold, capped at six. Ties keep
// first-sold order so the list is stable across refreshes.
func buildTopSnacks(qty map[string]int, firstSeen []string) []SnackCount {
	ranked := make([]SnackCount, 0, len(firstSeen))
	for _, name := range firstSeen {
		ranked = append(ranked, SnackCount{Name: name, Qty: qty[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Qty > ranked[j].Qty
	})
	if len(ranked) > topSnackMax {
		ranked = ranked[:topSnackMax]
	}
	return ranked
}

func buildTopRevenue(revenue map[string]int64, firstSeen []string) []SnackRevenue {
	ranked := make([]SnackRevenue, 0, len(firstSeen))
	for _, name := range firstSeen {
		ranked = append(ranked, SnackRevenue{Name: name, Revenue: revenue[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})
	if len(ranked) > topRevenueMax {
		ranked = ranked[:topRevenueMax]
	}
	return ranked
}

// buildPeakHours always yields the fixed working window so the chart
// axis never jumps around. Only paid orders count, and orders outside
// 8-22 are dropped from the chart, not from any money figure.
func buildPeakHours(counts map[int]int) []HourBucket {
	buckets := make([]HourBucket, 0, closingHour-openingHour+1)
	for h := openingHour; h <= closingHour; h++ {
		buckets = append(buckets, HourBucket{
			Label:  hourLabel(h),
			Orders: counts[h],
		})
	}
	return buckets
}

func hourLabel(h int) string {
	return strconv.Itoa(h) + ":00"
}
