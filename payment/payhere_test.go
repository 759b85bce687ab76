package payment

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func testConfig() Config {
	return Config{
		MerchantID:     "1221149",
		MerchantSecret: "TESTSECRET1234",
		Currency:       "LKR",
		Sandbox:        true,
	}
}

// referenceHash recomputes the PayHere launch hash independently of the
// Gateway implementation.
func referenceHash(merchantID, orderID, amount, currency, secret string) string {
	inner := md5.Sum([]byte(secret))
	secretDigest := strings.ToUpper(hex.EncodeToString(inner[:]))
	outer := md5.Sum([]byte(merchantID + orderID + amount + currency + secretDigest))
	return strings.ToUpper(hex.EncodeToString(outer[:]))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{1500.5, "1500.50"},
		{1500, "1500.00"},
		{0.1, "0.10"},
		{99.999, "100.00"},
		{1234567.89, "1234567.89"}, // no grouping separators
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.amount); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestSignMatchesReference(t *testing.T) {
	g := New(testConfig())

	got := g.Sign("42", "1500.50")
	want := referenceHash("1221149", "42", "1500.50", "LKR", "TESTSECRET1234")
	if got != want {
		t.Errorf("Sign = %q, want %q", got, want)
	}

	// Golden vector, precomputed outside this codebase.
	if got != "5216C5091B9A52A0E5B5DBB7E69D3EAA" {
		t.Errorf("Sign = %q, want golden 5216C5091B9A52A0E5B5DBB7E69D3EAA", got)
	}
}

func TestBuildLaunch(t *testing.T) {
	g := New(testConfig())

	lp := g.BuildLaunch("42", 1500.5)
	if lp.MerchantID != "1221149" {
		t.Errorf("MerchantID = %q", lp.MerchantID)
	}
	if lp.Amount != "1500.50" {
		t.Errorf("Amount = %q, want 1500.50", lp.Amount)
	}
	if lp.Currency != "LKR" {
		t.Errorf("Currency = %q, want LKR", lp.Currency)
	}
	if !lp.Sandbox {
		t.Error("Sandbox should be true")
	}
	if lp.Hash != g.Sign("42", "1500.50") {
		t.Errorf("Hash = %q does not match Sign", lp.Hash)
	}
}

func validNotification(g *Gateway) Notification {
	n := Notification{
		MerchantID: "1221149",
		OrderID:    "42",
		PaymentID:  "320025345",
		Amount:     "1500.50",
		Currency:   "LKR",
		StatusCode: StatusCodeSuccess,
	}
	n.Md5Sig = g.Sign(n.OrderID, n.Amount)
	return n
}

func TestVerifyNotification(t *testing.T) {
	g := New(testConfig())

	if err := g.VerifyNotification(validNotification(g)); err != nil {
		t.Fatalf("valid notification rejected: %v", err)
	}
}

func TestVerifyNotificationReformatsAmount(t *testing.T) {
	g := New(testConfig())

	// PayHere reports "1500.50"; a caller relaying "1500.5" must still verify
	// because the amount is reformatted to two decimals before hashing.
	n := validNotification(g)
	n.Amount = "1500.5"
	if err := g.VerifyNotification(n); err != nil {
		t.Fatalf("reformatted amount rejected: %v", err)
	}
}

func TestVerifyNotificationRejectsMutations(t *testing.T) {
	g := New(testConfig())

	mutations := map[string]func(*Notification){
		"signature byte": func(n *Notification) {
			sig := []byte(n.Md5Sig)
			if sig[0] == 'A' {
				sig[0] = 'B'
			} else {
				sig[0] = 'A'
			}
			n.Md5Sig = string(sig)
		},
		"amount":        func(n *Notification) { n.Amount = "1500.51" },
		"order id":      func(n *Notification) { n.OrderID = "43" },
		"currency":      func(n *Notification) { n.Currency = "USD" },
		"empty sig":     func(n *Notification) { n.Md5Sig = "" },
		"garbage amt":   func(n *Notification) { n.Amount = "not-a-number" },
		"lowercase sig": func(n *Notification) { n.Md5Sig = strings.ToLower(n.Md5Sig) },
	}

	for name, mutate := range mutations {
		n := validNotification(g)
		mutate(&n)
		if err := g.VerifyNotification(n); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("%s mutation: got %v, want ErrInvalidSignature", name, err)
		}
	}
}

func TestVerifyNotificationRejectsWrongMerchant(t *testing.T) {
	g := New(testConfig())

	// Payload signed correctly, but for a different merchant under a
	// different secret. The merchant check must reject before any hashing.
	other := New(Config{MerchantID: "1230099", MerchantSecret: "QuartzSecret", Currency: "LKR"})
	n := Notification{
		MerchantID: "1230099",
		OrderID:    "7",
		Amount:     "250.00",
		Currency:   "LKR",
		StatusCode: StatusCodeSuccess,
	}
	n.Md5Sig = other.Sign(n.OrderID, n.Amount)

	if err := g.VerifyNotification(n); !errors.Is(err, ErrInvalidMerchant) {
		t.Errorf("got %v, want ErrInvalidMerchant", err)
	}
}

func TestNotificationSuccess(t *testing.T) {
	codes := map[int]bool{
		StatusCodeSuccess:     true,
		StatusCodePending:     false,
		StatusCodeCanceled:    false,
		StatusCodeFailed:      false,
		StatusCodeChargedback: false,
	}
	for code, want := range codes {
		n := Notification{StatusCode: code}
		if n.Success() != want {
			t.Errorf("Success() with status_code %d = %v, want %v", code, n.Success(), want)
		}
	}
}
