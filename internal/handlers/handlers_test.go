package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/commencementdepot/storefront-orders-service/internal/apperrors"
	"github.com/commencementdepot/storefront-orders-service/internal/cache"
	"github.com/commencementdepot/storefront-orders-service/internal/clients"
	"github.com/commencementdepot/storefront-orders-service/internal/config"
	"github.com/commencementdepot/storefront-orders-service/internal/events"
	"github.com/commencementdepot/storefront-orders-service/internal/mail"
	"github.com/commencementdepot/storefront-orders-service/internal/service"
)

type testEnv struct {
	handlers *Handlers
	payment  *clients.MockPaymentClient
	sender   *mail.MockSender
	cache    *cache.MockReceiptCache
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	payment := clients.NewMockPaymentClient()
	sender := mail.NewMockSender()
	receiptCache := cache.NewMockReceiptCache()
	cfg := &config.Config{
		Features: config.FeatureFlags{EnableReceiptCaching: true},
	}

	svc := service.NewOrderService(payment, sender, receiptCache, events.NewMockPublisher(), cfg)

	return &testEnv{
		handlers: NewHandlers(svc, cfg),
		payment:  payment,
		sender:   sender,
		cache:    receiptCache,
	}
}

func jsonRequest(c *gin.Context, method, path string, body any) {
	data, _ := json.Marshal(body)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(data))
	c.Request.Header.Set("Content-Type", "application/json")
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handlers{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Health(c)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", resp["status"])
	}

	if resp["service"] != "storefront-orders" {
		t.Errorf("Expected service 'storefront-orders', got %v", resp["service"])
	}
}

func TestReady(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handlers{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Ready(c)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestConfirmOrder(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(c, http.MethodPost, "/confirm-order", map[string]any{
		"customerEmail": "buyer@example.com",
		"orderDetails": map[string]any{
			"orderId":       "ORD-1",
			"paymentStatus": "Paid",
			"totalAmount":   25.50,
		},
	})

	env.handlers.ConfirmOrder(c)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(env.sender.Messages) != 1 {
		t.Errorf("Expected 1 email sent, got %d", len(env.sender.Messages))
	}
}

func TestConfirmOrder_InvalidBody(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/confirm-order", strings.NewReader("{not json"))

	env.handlers.ConfirmOrder(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestConfirmOrder_InvalidEmail(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(c, http.MethodPost, "/confirm-order", map[string]any{
		"customerEmail": "not-an-email",
	})

	env.handlers.ConfirmOrder(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["field"] != "customerEmail" {
		t.Errorf("Expected field 'customerEmail', got %v", resp["field"])
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(c, http.MethodPost, "/create-payment-intent", map[string]any{
		"items": []map[string]any{
			{"amount": 25.50, "description": "Cap and gown", "orderId": "ORD-2"},
		},
	})

	env.handlers.CreatePaymentIntent(c)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["clientSecret"] == "" {
		t.Error("Expected clientSecret in response")
	}
	if len(env.payment.Intents) != 1 || env.payment.Intents[0].Amount != 2550 {
		t.Errorf("Expected intent for 2550 cents, got %+v", env.payment.Intents)
	}
}

func TestCreatePaymentIntent_NoItems(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(c, http.MethodPost, "/create-payment-intent", map[string]any{"items": []any{}})

	env.handlers.CreatePaymentIntent(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestPaymentWebhook(t *testing.T) {
	env := newTestEnv()

	payload := `{"id":"evt_1","type":"charge.succeeded","data":{"object":{}}}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	c.Request.Header.Set("X-Payment-Signature", "t=1,v1=ok")

	env.handlers.PaymentWebhook(c)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["received"] != true {
		t.Errorf("Expected received acknowledgement, got %v", resp)
	}
}

func TestPaymentWebhook_BadSignature(t *testing.T) {
	env := newTestEnv()
	env.payment.Err = errors.New("webhook signature mismatch")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))

	env.handlers.PaymentWebhook(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestGetReceipt(t *testing.T) {
	env := newTestEnv()
	env.cache.Receipts["ORD-1"] = "<html>receipt</html>"

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders/ORD-1/receipt", nil)
	c.Params = gin.Params{{Key: "id", Value: "ORD-1"}}

	env.handlers.GetReceipt(c)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected text/html content type, got %s", ct)
	}
	if w.Body.String() != "<html>receipt</html>" {
		t.Errorf("Unexpected body: %s", w.Body.String())
	}
}

func TestGetReceipt_NotFound(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders/ORD-missing/receipt", nil)
	c.Params = gin.Params{{Key: "id", Value: "ORD-missing"}}

	env.handlers.GetReceipt(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"validation", apperrors.NewValidationError("items", "no items provided"), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handleError(c, tt.err)

			if w.Code != tt.code {
				t.Errorf("Expected status %d, got %d", tt.code, w.Code)
			}
		})
	}
}
