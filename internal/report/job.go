package report

import (
	"context"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/snacktrackhq/snacktrack/internal/order"
)

// Deliverer pushes a rendered summary to wherever the owner reads it.
type Deliverer interface {
	Deliver(ctx context.Context, text string) error
}

// SummaryJob builds and delivers the end-of-day digest. Delivery
// failures are logged and swallowed; a flaky chat must never affect
// order taking.
type SummaryJob struct {
	repo      order.OrderRepo
	deliverer Deliverer
	loc       *time.Location
	logger    apt.Logger
}

func NewSummaryJob(repo order.OrderRepo, deliverer Deliverer, loc *time.Location, logger apt.Logger) *SummaryJob {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if loc == nil {
		loc = time.Local
	}
	return &SummaryJob{
		repo:      repo,
		deliverer: deliverer,
		loc:       loc,
		logger:    logger,
	}
}

// Run builds today's summary and hands it to the deliverer.
func (j *SummaryJob) Run(ctx context.Context) {
	now := time.Now().In(j.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.loc)

	orders, err := j.repo.ListRange(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		j.logger.Error("cannot load today's orders for summary", "error", err)
		return
	}

	summary := BuildDailySummary(orders, now, j.loc)

	if j.deliverer == nil {
		j.logger.Debug("no summary deliverer configured, skipping send")
		return
	}

	if err := j.deliverer.Deliver(ctx, summary.FormatMessage()); err != nil {
		j.logger.Error("cannot deliver daily summary", "error", err)
		return
	}

	j.logger.Info("Daily summary delivered",
		"date", summary.Date,
		"earnings", summary.TodayEarnings,
		"paid_orders", summary.TotalPaidOrders,
	)
}
