package publisher

type OrderEvent struct {
	OrderID         string  `json:"order_id"`
	OrderCode       string  `json:"order_code"`
	SellerID        string  `json:"seller_id"`
	TransactionUUID string  `json:"transaction_uuid"`
	Status          string  `json:"status"`
	Amount          float64 `json:"amount"`
	Gateway         string  `json:"gateway"`
}
