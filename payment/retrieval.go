package payment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	liveAPIBase    = "https://www.payhere.lk"
	sandboxAPIBase = "https://sandbox.payhere.lk"
)

func (g *Gateway) apiBase() string {
	if g.cfg.Sandbox {
		return sandboxAPIBase
	}
	return liveAPIBase
}

// AccessToken fetches an OAuth token for the merchant Retrieval API using the
// client-credentials grant.
func (g *Gateway) AccessToken() (string, error) {
	if g.cfg.AppID == "" || g.cfg.AppSecret == "" {
		return "", fmt.Errorf("payhere app credentials are not set")
	}

	client := resty.New().SetTimeout(30 * time.Second)
	resp, err := client.R().
		SetBasicAuth(g.cfg.AppID, g.cfg.AppSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		Post(g.apiBase() + "/merchant/v1/oauth/token")

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("payhere token request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response map[string]any
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	token, ok := response["access_token"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("access token not found in response: %v", response)
	}

	return token, nil
}

// RetrievePayment looks up the gateway's record of the payments captured for
// an order. Used by the admin payment-detail view to cross-check a ledger
// entry against PayHere directly.
func (g *Gateway) RetrievePayment(orderID string) (json.RawMessage, error) {
	token, err := g.AccessToken()
	if err != nil {
		return nil, err
	}

	resp, err := resty.New().SetTimeout(30*time.Second).R().
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Accept", "application/json").
		SetQueryParam("order_id", orderID).
		Get(g.apiBase() + "/merchant/v1/payment/search")

	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("payhere payment search failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return json.RawMessage(resp.Body()), nil
}
