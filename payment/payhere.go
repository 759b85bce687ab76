package payment

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PayHere notification status codes.
const (
	StatusCodeSuccess     = 2
	StatusCodePending     = 0
	StatusCodeCanceled    = -1
	StatusCodeFailed      = -2
	StatusCodeChargedback = -3
)

var (
	ErrInvalidMerchant  = errors.New("merchant id does not match configured merchant")
	ErrInvalidSignature = errors.New("notification signature is invalid")
)

// Config holds the PayHere merchant settings. It is read from the
// environment once at startup and never mutated afterwards.
type Config struct {
	MerchantID     string
	MerchantSecret string
	// AppID and AppSecret authorize the merchant Retrieval API, which is a
	// separate credential pair from the checkout secret.
	AppID     string
	AppSecret string
	Currency  string
	Sandbox   bool
}

// Gateway computes and verifies the MD5 signatures that authenticate traffic
// between this backend and PayHere.
//
// MD5 is mandated by PayHere's published checkout protocol and must match it
// bit for bit. It is a compatibility requirement, not a security choice, and
// is not used anywhere else in this codebase.
type Gateway struct {
	cfg          Config
	secretDigest string
}

func New(cfg Config) *Gateway {
	return &Gateway{
		cfg:          cfg,
		secretDigest: md5Upper(cfg.MerchantSecret),
	}
}

func (g *Gateway) MerchantID() string { return g.cfg.MerchantID }
func (g *Gateway) Currency() string   { return g.cfg.Currency }
func (g *Gateway) Sandbox() bool      { return g.cfg.Sandbox }

// FormatAmount renders an amount with exactly two decimal places and no
// grouping separators, the form PayHere hashes on both legs: 1500.5 -> "1500.50".
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// Sign computes the launch hash for an outbound checkout request:
// uppercase hex MD5 of merchantId + orderId + amount + currency + MD5(secret).
func (g *Gateway) Sign(orderID, formattedAmount string) string {
	return md5Upper(g.cfg.MerchantID + orderID + formattedAmount + g.cfg.Currency + g.secretDigest)
}

// LaunchParams carries everything the frontend needs to open the hosted
// checkout page for an order.
type LaunchParams struct {
	MerchantID string `json:"merchantId"`
	OrderID    string `json:"orderId"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Hash       string `json:"hash"`
	Sandbox    bool   `json:"sandbox"`
}

func (g *Gateway) BuildLaunch(orderID string, amount float64) LaunchParams {
	formatted := FormatAmount(amount)
	return LaunchParams{
		MerchantID: g.cfg.MerchantID,
		OrderID:    orderID,
		Amount:     formatted,
		Currency:   g.cfg.Currency,
		Hash:       g.Sign(orderID, formatted),
		Sandbox:    g.cfg.Sandbox,
	}
}

// Notification is the form-encoded payload PayHere POSTs to the notify URL.
// Required fields are enforced by binding before any hashing runs.
type Notification struct {
	MerchantID    string `form:"merchant_id" json:"merchant_id" binding:"required"`
	OrderID       string `form:"order_id" json:"order_id" binding:"required"`
	PaymentID     string `form:"payment_id" json:"payment_id"`
	Amount        string `form:"payhere_amount" json:"payhere_amount" binding:"required"`
	Currency      string `form:"payhere_currency" json:"payhere_currency" binding:"required"`
	StatusCode    int    `form:"status_code" json:"status_code"`
	Md5Sig        string `form:"md5sig" json:"md5sig" binding:"required"`
	StatusMessage string `form:"status_message" json:"status_message"`
	Method        string `form:"method" json:"method"`
}

// Success reports whether the notification carries the gateway's success code.
func (n Notification) Success() bool {
	return n.StatusCode == StatusCodeSuccess
}

// VerifyNotification authenticates an inbound notification. The signature is
// always recomputed locally from the payload fields and the server-held
// secret; the md5sig the caller provides is only ever compared against, never
// trusted.
func (g *Gateway) VerifyNotification(n Notification) error {
	if n.MerchantID != g.cfg.MerchantID {
		return ErrInvalidMerchant
	}

	amount, err := strconv.ParseFloat(n.Amount, 64)
	if err != nil {
		return fmt.Errorf("%w: unparseable amount %q", ErrInvalidSignature, n.Amount)
	}

	expected := md5Upper(n.MerchantID + n.OrderID + FormatAmount(amount) + n.Currency + g.secretDigest)
	if expected != n.Md5Sig {
		return ErrInvalidSignature
	}
	return nil
}

func md5Upper(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
