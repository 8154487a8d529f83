package order

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Order is one billed customer transaction.
type Order struct {
	ID          uuid.UUID  `json:"id" bson:"_id"`
	DailyNumber int        `json:"daily_number,omitempty" bson:"daily_number,omitempty"`
	Items       []LineItem `json:"items" bson:"items"`
	TotalAmount int64      `json:"total_amount" bson:"total_amount"`
	PaymentDone bool       `json:"payment_done" bson:"payment_done"`
	CreatedBy   uuid.UUID  `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// LineItem is a named quantity of a catalog snack with a price snapshot.
// It has no identity of its own; it lives and dies with its order.
type LineItem struct {
	Name  string `json:"name" bson:"name"`
	Qty   int    `json:"qty" bson:"qty"`
	Price int64  `json:"price" bson:"price"`
	Total int64  `json:"total" bson:"total"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

// ResourceType returns the resource type for URL generation.
func (o *Order) ResourceType() string {
	return "order"
}

func NewOrder() *Order {
	return &Order{
		ID: apt.GenerateNewID(),
	}
}

// EnsureID ensures the aggregate root has a valid ID.
func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

// BeforeCreate sets creation timestamps.
func (o *Order) BeforeCreate() {
	o.EnsureID()
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
}

// BeforeUpdate sets update timestamps.
func (o *Order) BeforeUpdate() {
	o.UpdatedAt = time.Now()
}

// SetPaymentState flips the payment flag. It reports whether the call
// actually changed anything so callers can skip writes and events when
// the order already is in the requested state.
func (o *Order) SetPaymentState(done bool) bool {
	if o.PaymentDone == done {
		return false
	}
	o.PaymentDone = done
	o.BeforeUpdate()
	return true
}
