package events

import "time"

const (
	OrderLifecycleTopic   = "cpq.order.lifecycle.v1"
	OrderCreatedEventType = "order.created"
	OrderAggregate        = "order"
)

type OrderCreatedEvent struct {
	EventType   string    `json:"event_type"`
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CompanyName string    `json:"company_name"`
	CustomerID  uint      `json:"customer_id"`
	QuoteID     *uint     `json:"quote_id,omitempty"`
	TotalAmount string    `json:"total_amount"`
	CreatedBy   string    `json:"created_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
