package paymentdto

import "github.com/Tengoku18/thirft-verse-sub001/internal/domain"

type InitiateCheckoutInput struct {
	Gateway         domain.Gateway
	SellerID        string
	BuyerName       string
	BuyerEmail      string
	ShippingAddress string
	Items           []CheckoutItem
}

type CheckoutItem struct {
	ProductID  string
	Title      string
	CoverImage string
	Quantity   int32
	UnitPrice  float64
}

// FonepayCallbackParams are the raw query parameters of the Fonepay return
// redirect.
type FonepayCallbackParams struct {
	PRN    string
	PID    string
	PS     string
	RC     string
	UID    string
	BC     string
	INI    string
	PAmt   string
	RAmt   string
	DV     string
}
