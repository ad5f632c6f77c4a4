package gateway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// FonepayRequestFields are the parameters signed into the checkout redirect.
// The request-side ordering is documented and stable.
type FonepayRequestFields struct {
	MerchantCode string // PID
	Mode         string // MD
	ReferenceNo  string // PRN
	Amount       string // AMT
	Remarks1     string // R1
	Remarks2     string // R2
	Date         string // DT
	ReturnURL    string // RU
}

// FonepayResponseFields are the parameters the gateway sends back with its
// DV digest. Unlike the request side, the ordering the gateway actually
// digests is not reliably documented, so verification tries every plausible
// canonical ordering.
type FonepayResponseFields struct {
	ReferenceNo  string // PRN
	MerchantCode string // PID
	PaidStatus   string // PS
	ResponseCode string // RC
	UID          string // UID
	BankCode     string // BC
	Initiator    string // INI
	PaidAmount   string // P_AMT
	RequestedAmt string // R_AMT
}

type FonepayAdapter struct {
	merchantCode string
	secretKey    []byte
}

func NewFonepayAdapter(merchantCode, secretKey string) *FonepayAdapter {
	return &FonepayAdapter{
		merchantCode: merchantCode,
		secretKey:    []byte(secretKey),
	}
}

func (a *FonepayAdapter) MerchantCode() string {
	return a.merchantCode
}

// Sign computes the uppercase hex HMAC-SHA512 DV for a checkout request.
func (a *FonepayAdapter) Sign(fields FonepayRequestFields) string {
	message := strings.Join([]string{
		fields.MerchantCode,
		fields.Mode,
		fields.ReferenceNo,
		fields.Amount,
		fields.Remarks1,
		fields.Remarks2,
		fields.Date,
		fields.ReturnURL,
	}, ",")
	return a.digest(message)
}

// responseOrderings are the candidate canonical orderings of the response
// digest. The gateway's documentation and its observed traffic disagree on
// where UID/BC sit and whether R_AMT is included, so each plausible variant
// gets a candidate.
var responseOrderings = [][]string{
	{"PRN", "PID", "PS", "RC", "UID", "BC", "INI", "P_AMT", "R_AMT"},
	{"PID", "PRN", "PS", "RC", "UID", "BC", "INI", "P_AMT", "R_AMT"},
	{"PRN", "PID", "PS", "RC", "BC", "UID", "INI", "P_AMT", "R_AMT"},
	{"PRN", "PID", "PS", "RC", "UID", "BC", "INI", "P_AMT"},
}

// Verify accepts the response if any candidate ordering reproduces the
// received DV (hex digests compared case-insensitively). No candidate
// matching means rejection: an unverifiable payment is never trusted.
func (a *FonepayAdapter) Verify(dv string, fields FonepayResponseFields) bool {
	if strings.TrimSpace(dv) == "" {
		return false
	}
	values := map[string]string{
		"PRN":   fields.ReferenceNo,
		"PID":   fields.MerchantCode,
		"PS":    fields.PaidStatus,
		"RC":    fields.ResponseCode,
		"UID":   fields.UID,
		"BC":    fields.BankCode,
		"INI":   fields.Initiator,
		"P_AMT": fields.PaidAmount,
		"R_AMT": fields.RequestedAmt,
	}
	for _, ordering := range responseOrderings {
		parts := make([]string, len(ordering))
		for i, name := range ordering {
			parts[i] = values[name]
		}
		candidate := a.digest(strings.Join(parts, ","))
		if hmac.Equal([]byte(strings.ToLower(candidate)), []byte(strings.ToLower(dv))) {
			return true
		}
	}
	return false
}

func (a *FonepayAdapter) digest(message string) string {
	mac := hmac.New(sha512.New, a.secretKey)
	mac.Write([]byte(message))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}
