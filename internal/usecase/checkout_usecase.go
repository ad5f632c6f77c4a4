package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/gateway"
	paymentdto "github.com/Tengoku18/thirft-verse-sub001/internal/usecase/dto/payment"
	"github.com/google/uuid"
)

type CheckoutUsecase interface {
	InitiateCheckout(input *paymentdto.InitiateCheckoutInput) (*paymentdto.InitiateCheckoutOutput, error)
}

type DefaultCheckoutUsecase struct {
	TxnRepo   domain.TransactionRepository
	Esewa     *gateway.EsewaAdapter
	Fonepay   *gateway.FonepayAdapter
	ReturnURL string
}

func NewDefaultCheckoutUsecase(
	txnRepo domain.TransactionRepository,
	esewa *gateway.EsewaAdapter,
	fonepay *gateway.FonepayAdapter,
	returnURL string) *DefaultCheckoutUsecase {

	return &DefaultCheckoutUsecase{
		TxnRepo:   txnRepo,
		Esewa:     esewa,
		Fonepay:   fonepay,
		ReturnURL: returnURL,
	}
}

// InitiateCheckout creates the pending transaction carrying the order intent
// and returns the signed form parameters for the chosen gateway. The total
// is computed server-side from the item snapshot, never taken from the client.
func (uc *DefaultCheckoutUsecase) InitiateCheckout(input *paymentdto.InitiateCheckoutInput) (*paymentdto.InitiateCheckoutOutput, error) {
	if input.SellerID == "" || len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: seller and items are required", domain.ErrMissingData)
	}

	var amount float64
	items := make([]domain.OrderIntentItem, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", domain.ErrMalformedPayload)
		}
		amount += float64(item.Quantity) * item.UnitPrice
		items[i] = domain.OrderIntentItem{
			ProductID:  item.ProductID,
			Title:      item.Title,
			CoverImage: item.CoverImage,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}

	transactionUUID := uuid.NewString()
	tx := &domain.PaymentTransaction{
		TransactionUUID: transactionUUID,
		Gateway:         input.Gateway,
		Amount:          amount,
		Intent: domain.OrderIntent{
			SellerID:        input.SellerID,
			BuyerName:       input.BuyerName,
			BuyerEmail:      input.BuyerEmail,
			ShippingAddress: input.ShippingAddress,
			Items:           items,
		},
	}

	params, err := uc.gatewayParams(input.Gateway, transactionUUID, amount)
	if err != nil {
		return nil, err
	}

	if err := uc.TxnRepo.CreateTransaction(tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	return &paymentdto.InitiateCheckoutOutput{
		TransactionUUID: transactionUUID,
		Gateway:         input.Gateway,
		GatewayParams:   params,
	}, nil
}

func (uc *DefaultCheckoutUsecase) gatewayParams(gw domain.Gateway, transactionUUID string, amount float64) (map[string]string, error) {
	amountStr := formatAmount(amount)

	switch gw {
	case domain.GatewayEsewa:
		fields := gateway.EsewaFields{
			TotalAmount:     amountStr,
			TransactionUUID: transactionUUID,
			ProductCode:     uc.Esewa.ProductCode(),
		}
		return map[string]string{
			"total_amount":       amountStr,
			"transaction_uuid":   transactionUUID,
			"product_code":       uc.Esewa.ProductCode(),
			"signed_field_names": uc.Esewa.SignedFieldNames(),
			"signature":          uc.Esewa.Sign(fields),
		}, nil

	case domain.GatewayFonepay:
		fields := gateway.FonepayRequestFields{
			MerchantCode: uc.Fonepay.MerchantCode(),
			Mode:         "P",
			ReferenceNo:  transactionUUID,
			Amount:       amountStr,
			Remarks1:     "thriftverse-order",
			Remarks2:     "N/A",
			Date:         time.Now().Format("01/02/2006"),
			ReturnURL:    uc.ReturnURL,
		}
		return map[string]string{
			"PID": fields.MerchantCode,
			"MD":  fields.Mode,
			"PRN": fields.ReferenceNo,
			"AMT": fields.Amount,
			"R1":  fields.Remarks1,
			"R2":  fields.Remarks2,
			"DT":  fields.Date,
			"RU":  fields.ReturnURL,
			"DV":  uc.Fonepay.Sign(fields),
		}, nil
	}

	return nil, fmt.Errorf("%w: unknown gateway %q", domain.ErrMalformedPayload, gw)
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
