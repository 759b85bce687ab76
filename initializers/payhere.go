package initializers

import (
	"log"
	"os"

	"github.com/IsuruKaushika/Ogee-Era/payment"
)

// LoadPayhereConfig reads the PayHere merchant settings from the environment
// once at startup. The returned struct is the only place these values live;
// nothing else reads them ambiently.
func LoadPayhereConfig() payment.Config {
	cfg := payment.Config{
		MerchantID:     os.Getenv("PAYHERE_MERCHANT_ID"),
		MerchantSecret: os.Getenv("PAYHERE_MERCHANT_SECRET"),
		AppID:          os.Getenv("PAYHERE_APP_ID"),
		AppSecret:      os.Getenv("PAYHERE_APP_SECRET"),
		Currency:       os.Getenv("PAYHERE_CURRENCY"),
		Sandbox:        os.Getenv("PAYHERE_SANDBOX") == "true",
	}

	if cfg.MerchantID == "" || cfg.MerchantSecret == "" {
		log.Fatal("PAYHERE_MERCHANT_ID and PAYHERE_MERCHANT_SECRET must be set")
	}
	if cfg.Currency == "" {
		cfg.Currency = "LKR"
	}

	return cfg
}
