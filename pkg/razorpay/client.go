package razorpay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	razorpaysdk "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"

	"github.com/trovekart/storefront-backend/pkg/config"
)

var paiseFactor = decimal.NewFromInt(100)

// Client wraps the Razorpay orders API for payment intent creation.
type Client struct {
	sdk             *razorpaysdk.Client
	defaultCurrency string
}

// New validates the credentials and returns a configured client.
func New(cfg config.RazorpayConfig) (*Client, error) {
	if strings.TrimSpace(cfg.KeyID) == "" || strings.TrimSpace(cfg.KeySecret) == "" {
		return nil, errors.New("razorpay key id and secret are required")
	}
	currency := strings.ToUpper(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = "INR"
	}
	return &Client{
		sdk:             razorpaysdk.NewClient(cfg.KeyID, cfg.KeySecret),
		defaultCurrency: currency,
	}, nil
}

// CreateIntent creates a gateway order for the amount in major units and
// returns the gateway order id. Amounts are converted to paise.
func (c *Client) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (string, error) {
	if c == nil || c.sdk == nil {
		return "", errors.New("razorpay client not initialized")
	}
	if !amount.IsPositive() {
		return "", fmt.Errorf("amount must be positive, got %s", amount)
	}
	if currency == "" {
		currency = c.defaultCurrency
	}

	paise := amount.Mul(paiseFactor).Round(0)
	data := map[string]interface{}{
		"amount":   paise.IntPart(),
		"currency": strings.ToUpper(currency),
	}
	order, err := c.sdk.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("creating razorpay order: %w", err)
	}

	id, ok := order["id"].(string)
	if !ok || id == "" {
		return "", errors.New("razorpay order response missing id")
	}
	return id, nil
}
