package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const razorpayDefaultBaseURL = "https://api.razorpay.com/v1"

type razorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewRazorpayGateway creates a Razorpay Orders API client
func NewRazorpayGateway(cfg *config.PaymentConfig) (service.PaymentGateway, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, errors.New("razorpay key id and secret are required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = razorpayDefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &razorpayGateway{
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (g *razorpayGateway) Provider() string {
	return constants.PaymentProviderRazorpay
}

func (g *razorpayGateway) PublicKey() string {
	return g.keyID
}

// CreateOrder opens an order at Razorpay. Amounts are sent in minor units.
func (g *razorpayGateway) CreateOrder(ctx context.Context, req *service.CreatePaymentOrderRequest) (*service.PaymentOrder, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   entity.ToMinorUnits(req.Amount),
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes": map[string]string{
			"intent_id": req.Receipt,
			"email":     req.CustomerEmail,
		},
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "razorpay request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read razorpay response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		description := gjson.GetBytes(body, "error.description").String()
		if description == "" {
			description = http.StatusText(resp.StatusCode)
		}

		return nil, errors.Errorf("razorpay returned %d: %s", resp.StatusCode, description)
	}

	result := gjson.ParseBytes(body)
	orderID := result.Get("id").String()
	if orderID == "" {
		return nil, errors.New("razorpay response is missing the order id")
	}

	currency := result.Get("currency").String()
	if currency == "" {
		currency = req.Currency
	}

	return &service.PaymentOrder{
		GatewayOrderID: orderID,
		AmountMinor:    result.Get("amount").Int(),
		Currency:       currency,
	}, nil
}

// VerifyPayment checks the checkout signature locally with the key secret.
func (g *razorpayGateway) VerifyPayment(_ context.Context, confirmation *service.PaymentConfirmation) error {
	if err := requireSigned(confirmation); err != nil {
		return err
	}
	if !VerifySignature(g.keySecret, confirmation.GatewayOrderID, confirmation.PaymentID, confirmation.Signature) {
		return service.ErrSignatureMismatch
	}

	return nil
}
