package entity

import "time"

// OrderStatus follows pending -> confirmed -> delivered, or pending ->
// cancelled. Transitions out of pending are driven by fulfillment, not by
// this service, which only ever creates orders as pending.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Order is a buyer's request for Quantity units of a product.
type Order struct {
	ID            string
	ProductID     string
	UserID        string
	Quantity      int
	Status        OrderStatus
	PaymentStatus PaymentStatus
	ProductName   string // joined on reads
	ProductPrice  float64
	CreatedAt     time.Time
}
