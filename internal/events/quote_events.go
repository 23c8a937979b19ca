package events

import "time"

const (
	QuoteLifecycleTopic    = "cpq.quote.lifecycle.v1"
	QuotePDFRequestedTopic = "cpq.quote.pdf.requested.v1"

	QuoteCreatedEventType      = "quote.created"
	QuotePDFRequestedEventType = "quote.pdf.requested"

	QuoteAggregate = "quote"
)

type QuoteCreatedEvent struct {
	EventType   string    `json:"event_type"`
	QuoteID     uint      `json:"quote_id"`
	RefNo       string    `json:"ref_no"`
	CompanyName string    `json:"company_name"`
	CustomerID  uint      `json:"customer_id"`
	TotalAmount string    `json:"total_amount"`
	CreatedBy   string    `json:"created_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type QuotePDFRequestedEvent struct {
	EventType   string    `json:"event_type"`
	QuoteID     uint      `json:"quote_id"`
	CompanyName string    `json:"company_name"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
