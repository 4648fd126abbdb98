package clients

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/commencementdepot/storefront-orders-service/internal/config"
	"github.com/commencementdepot/storefront-orders-service/internal/logging"
	"github.com/commencementdepot/storefront-orders-service/internal/middleware"
)

// Webhook signatures older than this are rejected to limit replay.
const webhookTolerance = 5 * time.Minute

// CreateIntentRequest is the payload sent to the processor to open a
// payment intent. Amount is in cents.
type CreateIntentRequest struct {
	Amount              int64             `json:"amount"`
	Currency            string            `json:"currency"`
	CaptureMethod       string            `json:"capture_method"`
	PaymentMethodTypes  []string          `json:"payment_method_types"`
	Description         string            `json:"description,omitempty"`
	StatementDescriptor string            `json:"statement_descriptor,omitempty"`
	Metadata            map[string]string `json:"metadata,omitempty"`
}

// PaymentIntent is the processor's representation of an intent.
type PaymentIntent struct {
	ID           string            `json:"id"`
	Amount       int64             `json:"amount"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	ReceiptEmail string            `json:"receipt_email"`
	Metadata     map[string]string `json:"metadata"`
}

// WebhookEvent is a verified event delivered by the processor.
type WebhookEvent struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// PaymentIntent decodes the event payload as a payment intent.
func (e *WebhookEvent) PaymentIntent() (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := json.Unmarshal(e.Data.Object, &intent); err != nil {
		return nil, fmt.Errorf("decoding event payload: %w", err)
	}
	return &intent, nil
}

// HTTPPaymentClient talks to the payment processor's REST API.
type HTTPPaymentClient struct {
	baseURL       string
	httpClient    *http.Client
	secretKey     string
	webhookSecret string
	logger        *logging.Logger
	now           func() time.Time
}

// NewHTTPPaymentClient creates a payment processor client.
func NewHTTPPaymentClient(cfg config.PaymentConfig, logger *logging.Logger) *HTTPPaymentClient {
	return &HTTPPaymentClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		logger:        logger,
		now:           time.Now,
	}
}

// CreatePaymentIntent opens a payment intent with the processor.
func (c *HTTPPaymentClient) CreatePaymentIntent(ctx context.Context, req *CreateIntentRequest) (*PaymentIntent, error) {
	c.logger.Debug("Creating payment intent", logging.Fields{
		"amount":   req.Amount,
		"currency": req.Currency,
	})

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/payment_intents", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	c.setHeaders(ctx, httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Payment intent request failed", logging.Fields{"error": err.Error()})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("Payment intent request returned error", logging.Fields{
			"status_code": resp.StatusCode,
		})
		return nil, fmt.Errorf("payment processor returned status %d", resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}

	c.logger.Info("Payment intent created", logging.Fields{
		"intent_id": intent.ID,
		"status":    intent.Status,
	})

	return &intent, nil
}

// GetPaymentIntent retrieves an intent by ID. A missing intent returns
// nil, nil.
func (c *HTTPPaymentClient) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	url := fmt.Sprintf("%s/v1/payment_intents/%s", c.baseURL, id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	c.setHeaders(ctx, httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment processor returned status %d", resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}

	return &intent, nil
}

// ConstructEvent verifies a webhook delivery against its signature
// header ("t=<unix>,v1=<hex hmac>") and decodes the event. The
// signature covers "<timestamp>.<payload>" with HMAC-SHA256 keyed by
// the endpoint's webhook secret.
func (c *HTTPPaymentClient) ConstructEvent(payload []byte, sigHeader string) (*WebhookEvent, error) {
	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	if c.now().Sub(time.Unix(timestamp, 0)) > webhookTolerance {
		return nil, fmt.Errorf("webhook timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	expected := mac.Sum(nil)

	verified := false
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			verified = true
			break
		}
	}
	if !verified {
		return nil, fmt.Errorf("webhook signature mismatch")
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decoding webhook event: %w", err)
	}

	return &event, nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, fmt.Errorf("missing signature header")
	}

	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("malformed signature timestamp")
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, v)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("malformed signature header")
	}
	return timestamp, signatures, nil
}

func (c *HTTPPaymentClient) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.secretKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
	}

	if requestID := middleware.FromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}
}

// MockPaymentClient is a mock implementation for testing.
type MockPaymentClient struct {
	Intents []*CreateIntentRequest
	Event   *WebhookEvent
	Err     error
}

// NewMockPaymentClient creates a mock payment client.
func NewMockPaymentClient() *MockPaymentClient {
	return &MockPaymentClient{}
}

func (m *MockPaymentClient) CreatePaymentIntent(ctx context.Context, req *CreateIntentRequest) (*PaymentIntent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Intents = append(m.Intents, req)
	return &PaymentIntent{
		ID:           fmt.Sprintf("pi_%d", time.Now().UnixNano()),
		Amount:       req.Amount,
		ClientSecret: "cs_test_secret",
		Status:       "requires_payment_method",
		Metadata:     req.Metadata,
	}, nil
}

func (m *MockPaymentClient) ConstructEvent(payload []byte, sigHeader string) (*WebhookEvent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Event != nil {
		return m.Event, nil
	}
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
