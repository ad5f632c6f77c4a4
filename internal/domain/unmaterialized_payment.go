package domain

import "time"

// UnmaterializedPayment is the operator reconciliation record for the one
// state the pipeline cannot repair on its own: the processed flag was won
// but the order insert failed. Money is captured, no order exists. These
// rows are never retried automatically.
type UnmaterializedPayment struct {
	ID              string
	TransactionUUID string
	Gateway         Gateway
	Amount          float64
	SellerID        string
	ErrorMessage    string
	CreatedAt       time.Time
}

type UnmaterializedPaymentRepository interface {
	CreateLog(log *UnmaterializedPayment) error
	GetLogs(page, limit int32) ([]*UnmaterializedPayment, int64, error)
}
