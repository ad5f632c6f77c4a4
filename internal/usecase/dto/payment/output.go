package paymentdto

import "github.com/Tengoku18/thirft-verse-sub001/internal/domain"

type InitiateCheckoutOutput struct {
	TransactionUUID string
	Gateway         domain.Gateway
	// GatewayParams are the signed form fields the client posts to the
	// gateway's checkout page.
	GatewayParams map[string]string
}

// VerifiedPayment is the read-only result of a successful verification:
// everything the materializer needs, nothing mutated yet.
type VerifiedPayment struct {
	TransactionUUID string
	Gateway         domain.Gateway
	Amount          float64
	Intent          domain.OrderIntent
}
