package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// EsewaFields are the signed parameters of an eSewa ePay transaction.
// The gateway documents one fixed signing order (total_amount,
// transaction_uuid, product_code) and uses it symmetrically for the
// checkout form and the confirmation callback.
type EsewaFields struct {
	TotalAmount     string
	TransactionUUID string
	ProductCode     string
}

type EsewaAdapter struct {
	productCode string
	secretKey   []byte
}

func NewEsewaAdapter(productCode, secretKey string) *EsewaAdapter {
	return &EsewaAdapter{
		productCode: productCode,
		secretKey:   []byte(secretKey),
	}
}

func (a *EsewaAdapter) ProductCode() string {
	return a.productCode
}

// SignedFieldNames is echoed into the checkout form so the gateway signs
// the same ordering back.
func (a *EsewaAdapter) SignedFieldNames() string {
	return "total_amount,transaction_uuid,product_code"
}

// Sign computes the base64 HMAC-SHA256 over the documented field order.
func (a *EsewaAdapter) Sign(fields EsewaFields) string {
	message := fmt.Sprintf(
		"total_amount=%s,transaction_uuid=%s,product_code=%s",
		fields.TotalAmount, fields.TransactionUUID, fields.ProductCode,
	)
	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature from the received fields and compares in
// constant time. A single mutated byte in any signed field fails the check.
func (a *EsewaAdapter) Verify(signature string, fields EsewaFields) bool {
	if strings.TrimSpace(signature) == "" {
		return false
	}
	expected := a.Sign(fields)
	return hmac.Equal([]byte(expected), []byte(signature))
}
