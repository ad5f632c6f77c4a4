package usecase

import (
	"testing"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/gateway"
	paymentdto "github.com/Tengoku18/thirft-verse-sub001/internal/usecase/dto/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutInput(gw domain.Gateway) *paymentdto.InitiateCheckoutInput {
	return &paymentdto.InitiateCheckoutInput{
		Gateway:   gw,
		SellerID:  "seller-1",
		BuyerName: "Asha",
		Items: []paymentdto.CheckoutItem{
			{ProductID: "p-1", Title: "Wool jacket", Quantity: 2, UnitPrice: 1000},
			{ProductID: "p-2", Title: "Scarf", Quantity: 1, UnitPrice: 500},
		},
	}
}

func newCheckoutUsecase(txnRepo domain.TransactionRepository) *DefaultCheckoutUsecase {
	return NewDefaultCheckoutUsecase(
		txnRepo,
		gateway.NewEsewaAdapter("EPAYTEST", testEsewaKey),
		gateway.NewFonepayAdapter("NBQM", testFonepayKey),
		"https://thriftverse.example/api/v1/payments/fonepay/callback",
	)
}

func TestInitiateCheckoutEsewa(t *testing.T) {
	var stored *domain.PaymentTransaction
	repo := &fakeTransactionRepo{
		CreateTransactionFunc: func(tx *domain.PaymentTransaction) error {
			stored = tx
			return nil
		},
	}
	uc := newCheckoutUsecase(repo)

	out, err := uc.InitiateCheckout(checkoutInput(domain.GatewayEsewa))
	require.NoError(t, err)
	require.NotNil(t, stored)

	// the total comes from the item snapshot, not from the client
	assert.Equal(t, 2500.0, stored.Amount)
	assert.Equal(t, out.TransactionUUID, stored.TransactionUUID)
	assert.Equal(t, domain.GatewayEsewa, stored.Gateway)
	assert.Equal(t, "seller-1", stored.Intent.SellerID)
	require.Len(t, stored.Intent.Items, 2)

	params := out.GatewayParams
	assert.Equal(t, "2500", params["total_amount"])
	assert.Equal(t, "EPAYTEST", params["product_code"])
	assert.Equal(t, "total_amount,transaction_uuid,product_code", params["signed_field_names"])

	adapter := gateway.NewEsewaAdapter("EPAYTEST", testEsewaKey)
	assert.True(t, adapter.Verify(params["signature"], gateway.EsewaFields{
		TotalAmount:     params["total_amount"],
		TransactionUUID: params["transaction_uuid"],
		ProductCode:     params["product_code"],
	}))
}

func TestInitiateCheckoutFonepay(t *testing.T) {
	uc := newCheckoutUsecase(&fakeTransactionRepo{})

	out, err := uc.InitiateCheckout(checkoutInput(domain.GatewayFonepay))
	require.NoError(t, err)

	params := out.GatewayParams
	assert.Equal(t, "NBQM", params["PID"])
	assert.Equal(t, "P", params["MD"])
	assert.Equal(t, out.TransactionUUID, params["PRN"])
	assert.Equal(t, "2500", params["AMT"])
	assert.Equal(t, "https://thriftverse.example/api/v1/payments/fonepay/callback", params["RU"])

	adapter := gateway.NewFonepayAdapter("NBQM", testFonepayKey)
	assert.Equal(t, adapter.Sign(gateway.FonepayRequestFields{
		MerchantCode: params["PID"],
		Mode:         params["MD"],
		ReferenceNo:  params["PRN"],
		Amount:       params["AMT"],
		Remarks1:     params["R1"],
		Remarks2:     params["R2"],
		Date:         params["DT"],
		ReturnURL:    params["RU"],
	}), params["DV"])
}

func TestInitiateCheckoutValidation(t *testing.T) {
	uc := newCheckoutUsecase(&fakeTransactionRepo{})

	tests := []struct {
		name    string
		mutate  func(in *paymentdto.InitiateCheckoutInput)
		wantErr error
	}{
		{
			name:    "missing seller",
			mutate:  func(in *paymentdto.InitiateCheckoutInput) { in.SellerID = "" },
			wantErr: domain.ErrMissingData,
		},
		{
			name:    "no items",
			mutate:  func(in *paymentdto.InitiateCheckoutInput) { in.Items = nil },
			wantErr: domain.ErrMissingData,
		},
		{
			name:    "zero quantity",
			mutate:  func(in *paymentdto.InitiateCheckoutInput) { in.Items[0].Quantity = 0 },
			wantErr: domain.ErrMalformedPayload,
		},
		{
			name:    "unknown gateway",
			mutate:  func(in *paymentdto.InitiateCheckoutInput) { in.Gateway = "KHALTI" },
			wantErr: domain.ErrMalformedPayload,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := checkoutInput(domain.GatewayEsewa)
			tt.mutate(in)
			out, err := uc.InitiateCheckout(in)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
