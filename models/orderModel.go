package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCOD     = "COD"
	PaymentMethodPayhere = "PayHere"
)

// Fulfillment statuses. "pending" is the gateway-checkout holding state;
// "Failed" is the terminal state for rejected or canceled payments.
const (
	StatusPending    = "pending"
	StatusPlaced     = "Order Placed"
	StatusProcessing = "Processing"
	StatusPacked     = "Packed"
	StatusDelivered  = "Delivered"
	StatusFailed     = "Failed"
)

// statusRank orders the normal fulfillment pipeline. pending and Failed sit
// outside the pipeline and have no rank.
var statusRank = map[string]int{
	StatusPlaced:     1,
	StatusProcessing: 2,
	StatusPacked:     3,
	StatusDelivered:  4,
}

// IsValidStatus reports whether s is one of the enumerated order statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPlaced, StatusProcessing, StatusPacked, StatusDelivered, StatusFailed:
		return true
	}
	return false
}

// IsBackwardTransition reports whether moving from one status to another goes
// against the normal pipeline ordering. Moves involving pending or Failed are
// never backward.
func IsBackwardTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank < fromRank
}

type Order struct {
	gorm.Model
	UserID         int            `json:"userId"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Street         string         `json:"street"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	Country        string         `json:"country"`
	Zipcode        string         `json:"zipcode"`
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	Amount         float64        `json:"amount"`
	PaymentMethod  string         `json:"paymentMethod"`
	Payment        bool           `json:"payment"`
	PaymentID      string         `json:"paymentId"`
	PaymentDetails datatypes.JSON `json:"paymentDetails"`
	Status         string         `json:"status"`
	Items          []OrderItem    `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a snapshot of a product line at checkout time. Later catalog
// edits must not change it.
type OrderItem struct {
	gorm.Model
	OrderID   int     `json:"orderId"`
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
}
