package httpapi

type initiateCheckoutRequest struct {
	Gateway         string                `json:"gateway"`
	SellerID        string                `json:"seller_id"`
	BuyerName       string                `json:"buyer_name"`
	BuyerEmail      string                `json:"buyer_email"`
	ShippingAddress string                `json:"shipping_address"`
	Items           []checkoutItemRequest `json:"items"`
}

type checkoutItemRequest struct {
	ProductID  string  `json:"product_id"`
	Title      string  `json:"title"`
	CoverImage string  `json:"cover_image"`
	Quantity   int32   `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

type initiateCheckoutResponse struct {
	TransactionUUID string            `json:"transaction_uuid"`
	Gateway         string            `json:"gateway"`
	GatewayParams   map[string]string `json:"gateway_params"`
}

type orderWebhookRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type deviceTokenRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type notificationResponse struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data"`
	IsRead    bool              `json:"is_read"`
	CreatedAt string            `json:"created_at"`
}

type notificationListResponse struct {
	Notifications []notificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
}

type unmaterializedPaymentResponse struct {
	ID              string  `json:"id"`
	TransactionUUID string  `json:"transaction_uuid"`
	Gateway         string  `json:"gateway"`
	Amount          float64 `json:"amount"`
	SellerID        string  `json:"seller_id"`
	ErrorMessage    string  `json:"error_message"`
	CreatedAt       string  `json:"created_at"`
}

type unmaterializedPaymentListResponse struct {
	Payments []unmaterializedPaymentResponse `json:"payments"`
	Total    int64                           `json:"total"`
}
