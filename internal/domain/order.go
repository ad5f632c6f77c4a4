package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
	StatusRefunded  OrderStatus = "refunded"
)

// WebhookStatuses is the whitelist of statuses an external webhook may request.
var WebhookStatuses = map[OrderStatus]bool{
	StatusCancelled: true,
	StatusRefunded:  true,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted out of s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// CanTransition enforces the status DAG:
// pending -> completed, completed -> cancelled|refunded.
// Re-applying the current status is not a transition; callers treat it
// as a no-op success before consulting this.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusCompleted
	case StatusCompleted:
		return to == StatusCancelled || to == StatusRefunded
	}
	return false
}

type Order struct {
	ID              string
	Code            string
	TransactionUUID string
	Status          OrderStatus
	Amount          float64
	BuyerName       string
	BuyerEmail      string
	ShippingAddress string
	SellerID        string
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem carries a denormalized product snapshot taken at purchase time,
// deliberately decoupled from later product edits.
type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Title      string
	CoverImage string
	Quantity   int32
}

type OrderRepository interface {
	// CreateOrderWithItems inserts the order and its items in one DB transaction.
	CreateOrderWithItems(order *Order) error
	GetOrderByID(orderID string) (*Order, error)
	GetOrderByTransactionUUID(transactionUUID string) (*Order, error)
	// UpdateOrderStatusFrom performs a conditional single-row status update
	// guarded by the expected current status. Returns true when a row changed.
	UpdateOrderStatusFrom(orderID string, from, to OrderStatus) (bool, error)
}
