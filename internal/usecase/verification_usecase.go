package usecase

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/gateway"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/metrics"
	paymentdto "github.com/Tengoku18/thirft-verse-sub001/internal/usecase/dto/payment"
)

type VerificationUsecase interface {
	VerifyEsewaCallback(data string) (*paymentdto.VerifiedPayment, error)
	VerifyFonepayCallback(params *paymentdto.FonepayCallbackParams) (*paymentdto.VerifiedPayment, error)
}

// DefaultVerificationUsecase is strictly read-only: it loads the pending
// transaction and checks the confirmation against it, but never mutates
// anything. Retrying verification is always safe.
type DefaultVerificationUsecase struct {
	TxnRepo domain.TransactionRepository
	Esewa   *gateway.EsewaAdapter
	Fonepay *gateway.FonepayAdapter
	Metrics *metrics.PaymentMetrics
}

func NewDefaultVerificationUsecase(
	txnRepo domain.TransactionRepository,
	esewa *gateway.EsewaAdapter,
	fonepay *gateway.FonepayAdapter,
	paymentMetrics *metrics.PaymentMetrics) *DefaultVerificationUsecase {

	return &DefaultVerificationUsecase{
		TxnRepo: txnRepo,
		Esewa:   esewa,
		Fonepay: fonepay,
		Metrics: paymentMetrics,
	}
}

// esewaCallbackPayload is the decoded shape of the base64 blob eSewa appends
// to the success redirect.
type esewaCallbackPayload struct {
	TransactionCode  string `json:"transaction_code"`
	Status           string `json:"status"`
	TotalAmount      string `json:"total_amount"`
	TransactionUUID  string `json:"transaction_uuid"`
	ProductCode      string `json:"product_code"`
	SignedFieldNames string `json:"signed_field_names"`
	Signature        string `json:"signature"`
}

func (uc *DefaultVerificationUsecase) VerifyEsewaCallback(data string) (out *paymentdto.VerifiedPayment, err error) {
	defer uc.observe(domain.GatewayEsewa, time.Now(), &err)

	if strings.TrimSpace(data) == "" {
		return nil, domain.ErrMissingData
	}

	raw, decodeErr := decodeBase64(data)
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, decodeErr)
	}

	var payload esewaCallbackPayload
	if jsonErr := json.Unmarshal(raw, &payload); jsonErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, jsonErr)
	}

	if payload.TransactionUUID == "" {
		return nil, domain.ErrMissingData
	}
	if payload.Signature == "" {
		return nil, domain.ErrMissingSignature
	}

	tx, lookupErr := uc.TxnRepo.GetTransactionByUUID(payload.TransactionUUID)
	if lookupErr != nil {
		return nil, lookupErr
	}
	if tx.Gateway != domain.GatewayEsewa {
		return nil, domain.ErrTransactionNotFound
	}

	if !uc.Esewa.Verify(payload.Signature, gateway.EsewaFields{
		TotalAmount:     payload.TotalAmount,
		TransactionUUID: payload.TransactionUUID,
		ProductCode:     payload.ProductCode,
	}) {
		return nil, domain.ErrInvalidSignature
	}

	if payload.Status != "COMPLETE" {
		return nil, fmt.Errorf("%w: status %q", domain.ErrPaymentIncomplete, payload.Status)
	}

	// The amount check runs against the stored transaction, not against the
	// payload's own internally consistent fields. A re-signed payload with a
	// tampered amount passes the signature check and still fails here.
	confirmedAmount, parseErr := parseAmount(payload.TotalAmount)
	if parseErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, parseErr)
	}
	if !amountsEqual(confirmedAmount, tx.Amount) {
		return nil, domain.ErrAmountMismatch
	}

	return &paymentdto.VerifiedPayment{
		TransactionUUID: tx.TransactionUUID,
		Gateway:         tx.Gateway,
		Amount:          tx.Amount,
		Intent:          tx.Intent,
	}, nil
}

func (uc *DefaultVerificationUsecase) VerifyFonepayCallback(params *paymentdto.FonepayCallbackParams) (out *paymentdto.VerifiedPayment, err error) {
	defer uc.observe(domain.GatewayFonepay, time.Now(), &err)

	if params == nil || params.PRN == "" {
		return nil, domain.ErrMissingData
	}
	if params.DV == "" {
		return nil, domain.ErrMissingSignature
	}

	tx, lookupErr := uc.TxnRepo.GetTransactionByUUID(params.PRN)
	if lookupErr != nil {
		return nil, lookupErr
	}
	if tx.Gateway != domain.GatewayFonepay {
		return nil, domain.ErrTransactionNotFound
	}

	if !uc.Fonepay.Verify(params.DV, gateway.FonepayResponseFields{
		ReferenceNo:  params.PRN,
		MerchantCode: params.PID,
		PaidStatus:   params.PS,
		ResponseCode: params.RC,
		UID:          params.UID,
		BankCode:     params.BC,
		Initiator:    params.INI,
		PaidAmount:   params.PAmt,
		RequestedAmt: params.RAmt,
	}) {
		return nil, domain.ErrInvalidSignature
	}

	if !strings.EqualFold(params.RC, "successful") {
		return nil, fmt.Errorf("%w: response code %q", domain.ErrPaymentIncomplete, params.RC)
	}

	paidAmount, parseErr := parseAmount(params.PAmt)
	if parseErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, parseErr)
	}
	if !amountsEqual(paidAmount, tx.Amount) {
		return nil, domain.ErrAmountMismatch
	}

	return &paymentdto.VerifiedPayment{
		TransactionUUID: tx.TransactionUUID,
		Gateway:         tx.Gateway,
		Amount:          tx.Amount,
		Intent:          tx.Intent,
	}, nil
}

func (uc *DefaultVerificationUsecase) observe(gw domain.Gateway, start time.Time, errp *error) {
	if uc.Metrics == nil {
		return
	}
	result := "ok"
	if *errp != nil {
		result = "rejected"
	}
	uc.Metrics.PaymentsVerifiedTotal.WithLabelValues(string(gw), result).Inc()
	uc.Metrics.VerificationDuration.WithLabelValues(string(gw)).Observe(time.Since(start).Seconds())
}

// decodeBase64 accepts both padded standard and raw URL-safe alphabets; the
// gateways are not consistent about which one they emit.
func decodeBase64(data string) ([]byte, error) {
	if raw, err := base64.StdEncoding.DecodeString(data); err == nil {
		return raw, nil
	}
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
}

// parseAmount tolerates the grouping commas eSewa puts into total_amount
// ("1,000.0").
func parseAmount(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.ParseFloat(cleaned, 64)
}

func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}
