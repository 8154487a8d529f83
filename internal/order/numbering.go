package order

import (
	"context"
	"time"
)

const dayKeyFormat = "2006-01-02"

// DailyNumberer assigns the human-facing order number that restarts at 1
// every venue calendar day. Numbers are cosmetic: they are never used as
// keys and never backfilled on legacy records.
type DailyNumberer struct {
	seq Sequencer
	loc *time.Location
}

func NewDailyNumberer(seq Sequencer, loc *time.Location) *DailyNumberer {
	if loc == nil {
		loc = time.Local
	}
	return &DailyNumberer{seq: seq, loc: loc}
}

// Next returns the next sequence number for the day containing now.
func (n *DailyNumberer) Next(ctx context.Context, now time.Time) (int, error) {
	return n.seq.Next(ctx, DayKey(now, n.loc))
}

// DayKey maps an instant to its venue calendar day.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayKeyFormat)
}
