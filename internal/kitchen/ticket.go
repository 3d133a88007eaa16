// Package kitchen moves confirmed orders from the dining room to the kitchen queue.
package kitchen

import (
	"time"

	"tableside/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is the message placed on the kitchen queue for one confirmed order.
type Ticket struct {
	OrderID     uuid.UUID       `json:"orderId"`
	TableNumber string          `json:"tableNumber"`
	Customer    string          `json:"customer,omitempty"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"createdAt"`
	Lines       []TicketLine    `json:"lines"`
}

// TicketLine is one dish on a ticket.
type TicketLine struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// TicketFor builds the queue message for a persisted order.
func TicketFor(o model.Order) Ticket {
	t := Ticket{
		OrderID:     o.ID,
		TableNumber: o.TableNumber,
		Total:       o.Total,
		CreatedAt:   o.CreatedAt,
		Lines:       make([]TicketLine, 0, len(o.Lines)),
	}
	if o.CustomerName != nil {
		t.Customer = *o.CustomerName
	}
	for _, l := range o.Lines {
		line := TicketLine{ItemID: l.ItemID, Name: l.ItemName, Quantity: l.Quantity}
		if l.Note != nil {
			line.Note = *l.Note
		}
		t.Lines = append(t.Lines, line)
	}
	return t
}
