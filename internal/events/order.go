package events

import "time"

const (
	OrderLifecycleTopic = "orders.lifecycle"

	EventOrderCreated = "order.created"
	EventOrderPaid    = "order.paid"
	EventOrderUnpaid  = "order.unpaid"
	EventOrderDeleted = "order.deleted"
)

// OrderEvent is published on every order lifecycle transition. Consumers
// (display boards, bookkeeping exports) get enough denormalized data to
// act without calling back into the API.
type OrderEvent struct {
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	OrderID     string    `json:"order_id"`
	DailyNumber int       `json:"daily_number,omitempty"`
	TotalAmount int64     `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	PaymentDone bool      `json:"payment_done"`
	CreatedBy   string    `json:"created_by,omitempty"`
}
