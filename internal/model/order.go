package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a confirmed kitchen ticket.
type Order struct {
	ID           uuid.UUID       `json:"id"`
	SessionID    uuid.UUID       `json:"sessionId"`
	TableNumber  string          `json:"tableNumber"`
	CustomerName *string         `json:"customerName,omitempty"`
	Total        decimal.Decimal `json:"total"`
	PointsEarned int             `json:"pointsEarned"`
	CreatedAt    time.Time       `json:"createdAt"`
	Lines        []OrderLine     `json:"lines"`
}

// OrderLine is a line item of a kitchen ticket.
type OrderLine struct {
	ID        uuid.UUID       `json:"-"`
	OrderID   uuid.UUID       `json:"-"`
	ItemID    string          `json:"itemId"`
	ItemName  string          `json:"itemName"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Note      *string         `json:"note,omitempty"`
}

// OrderConfirmation is returned to the table after confirming the cart.
type OrderConfirmation struct {
	OrderID      uuid.UUID       `json:"orderId"`
	Total        decimal.Decimal `json:"total"`
	PointsEarned int             `json:"pointsEarned"`
	User         *User           `json:"user,omitempty"`
	Screen       Screen          `json:"screen"`
	Message      string          `json:"message"`
}

// ComplaintType classifies a complaint.
type ComplaintType string

const (
	ComplaintFood        ComplaintType = "food"
	ComplaintService     ComplaintType = "service"
	ComplaintCleanliness ComplaintType = "cleanliness"
	ComplaintWaiting     ComplaintType = "waiting"
	ComplaintOther       ComplaintType = "other"
)

// Valid reports whether t is a known complaint type.
func (t ComplaintType) Valid() bool {
	switch t {
	case ComplaintFood, ComplaintService, ComplaintCleanliness, ComplaintWaiting, ComplaintOther:
		return true
	}
	return false
}

// Complaint is a customer complaint filed from a table.
type Complaint struct {
	ID          uuid.UUID     `json:"id"`
	SessionID   uuid.UUID     `json:"sessionId"`
	TableNumber string        `json:"tableNumber"`
	Type        ComplaintType `json:"type"`
	Message     string        `json:"message"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// ComplaintRequest is the payload for filing a complaint.
type ComplaintRequest struct {
	Type    ComplaintType `json:"type"`
	Message string        `json:"message"`
}

// PaymentMethod is how the table intends to pay.
type PaymentMethod string

const (
	PaymentCard  PaymentMethod = "card"
	PaymentCash  PaymentMethod = "cash"
	PaymentSplit PaymentMethod = "split"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentCash, PaymentSplit:
		return true
	}
	return false
}

// BillRequest asks staff to bring the bill to a table.
type BillRequest struct {
	ID            uuid.UUID       `json:"id"`
	SessionID     uuid.UUID       `json:"sessionId"`
	TableNumber   string          `json:"tableNumber"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// BillRequestPayload is the payload for requesting the bill.
type BillRequestPayload struct {
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}
