package domain

import "time"

type Gateway string

const (
	GatewayEsewa   Gateway = "ESEWA"
	GatewayFonepay Gateway = "FONEPAY"
)

// OrderIntent is the order snapshot captured when checkout is initiated.
// It travels with the transaction so the materializer never has to consult
// live product data at payment time.
type OrderIntent struct {
	SellerID        string
	BuyerName       string
	BuyerEmail      string
	ShippingAddress string
	Items           []OrderIntentItem
}

type OrderIntentItem struct {
	ProductID  string
	Title      string
	CoverImage string
	Quantity   int32
	UnitPrice  float64
}

type PaymentTransaction struct {
	TransactionUUID string
	Gateway         Gateway
	Amount          float64
	Processed       bool
	Intent          OrderIntent
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type TransactionRepository interface {
	CreateTransaction(tx *PaymentTransaction) error
	GetTransactionByUUID(transactionUUID string) (*PaymentTransaction, error)
	// MarkProcessed flips processed false->true as a single conditional
	// update. Returns true only for the caller whose update took effect.
	MarkProcessed(transactionUUID string) (bool, error)
}
