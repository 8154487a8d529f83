package report

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/snacktrackhq/snacktrack/internal/order"
)

func TestBuildDailySummary(t *testing.T) {
	now := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		orders []*order.Order
		want   DailySummary
	}{
		{
			name:   "emptyDay",
			orders: nil,
			want: DailySummary{
				Date:     "2026-03-14",
				TopSnack: NoTopSnack,
			},
		},
		{
			name: "mixedDay",
			orders: []*order.Order{
				mkOrder(today, true, 30, line("Samosa", 2, 15)),
				mkOrder(today, true, 25, line("Vada Pav", 1, 25)),
				mkOrder(today, false, 15, line("Samosa", 1, 15)),
			},
			want: DailySummary{
				Date:            "2026-03-14",
				TodayEarnings:   55,
				TotalPaidOrders: 2,
				PendingOrders:   1,
				TopSnack:        "Samosa",
			},
		},
		{
			name: "yesterdayIgnored",
			orders: []*order.Order{
				mkOrder(yesterday, true, 100, line("Pav Bhaji", 2, 50)),
				mkOrder(today, true, 15, line("Samosa", 1, 15)),
			},
			want: DailySummary{
				Date:            "2026-03-14",
				TodayEarnings:   15,
				TotalPaidOrders: 1,
				TopSnack:        "Samosa",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildDailySummary(tt.orders, now, time.UTC)
			if got != tt.want {
				t.Errorf("BuildDailySummary() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDailySummaryFormatMessage(t *testing.T) {
	s := DailySummary{
		Date:            "2026-03-14",
		TodayEarnings:   155,
		TotalPaidOrders: 7,
		PendingOrders:   2,
		TopSnack:        "Samosa",
	}

	msg := s.FormatMessage()

	for _, want := range []string{"2026-03-14", "Rs. 155", "Paid orders: 7", "Pending orders: 2", "Samosa"} {
		if !strings.Contains(msg, want) {
			t.Errorf("FormatMessage() missing %q in %q", want, msg)
		}
	}
}

// mockSummaryRepo serves a fixed order list for the summary job.
type mockSummaryRepo struct {
	orders []*order.Order
	err    error
}

func (m *mockSummaryRepo) Create(ctx context.Context, o *order.Order) error { return nil }
func (m *mockSummaryRepo) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return nil, nil
}
func (m *mockSummaryRepo) List(ctx context.Context) ([]*order.Order, error) {
	return m.orders, m.err
}
func (m *mockSummaryRepo) ListByPayment(ctx context.Context, paid bool) ([]*order.Order, error) {
	return m.orders, m.err
}
func (m *mockSummaryRepo) ListRange(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	return m.orders, m.err
}
func (m *mockSummaryRepo) Save(ctx context.Context, o *order.Order) error { return nil }
func (m *mockSummaryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type mockDeliverer struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (m *mockDeliverer) Deliver(ctx context.Context, text string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, text)
	return nil
}

func TestSummaryJobRun(t *testing.T) {
	repo := &mockSummaryRepo{
		orders: []*order.Order{
			mkOrder(time.Now(), true, 30, line("Samosa", 2, 15)),
		},
	}
	deliverer := &mockDeliverer{}

	job := NewSummaryJob(repo, deliverer, time.UTC, nil)
	job.Run(context.Background())

	if len(deliverer.messages) != 1 {
		t.Fatalf("delivered %d messages, want 1", len(deliverer.messages))
	}
	if !strings.Contains(deliverer.messages[0], "Rs. 30") {
		t.Errorf("message %q missing earnings", deliverer.messages[0])
	}
}

func TestSummaryJobSwallowsDeliveryFailure(t *testing.T) {
	repo := &mockSummaryRepo{}
	deliverer := &mockDeliverer{err: fmt.Errorf("chat unreachable")}

	job := NewSummaryJob(repo, deliverer, time.UTC, nil)

	// Must not panic and must not propagate the failure.
	job.Run(context.Background())
}

func TestSummaryJobSkipsWithoutDeliverer(t *testing.T) {
	repo := &mockSummaryRepo{}
	job := NewSummaryJob(repo, nil, time.UTC, nil)
	job.Run(context.Background())
}
