package service

import (
	"context"
	"fmt"
	"math"

	"github.com/commencementdepot/storefront-orders-service/internal/apperrors"
	"github.com/commencementdepot/storefront-orders-service/internal/clients"
	"github.com/commencementdepot/storefront-orders-service/internal/config"
	"github.com/commencementdepot/storefront-orders-service/internal/events"
	"github.com/commencementdepot/storefront-orders-service/internal/logging"
	"github.com/commencementdepot/storefront-orders-service/internal/mail"
	"github.com/commencementdepot/storefront-orders-service/internal/metrics"
	"github.com/commencementdepot/storefront-orders-service/internal/receipt"
)

// PaymentClient is the slice of the payment processor client the
// service depends on.
type PaymentClient interface {
	CreatePaymentIntent(ctx context.Context, req *clients.CreateIntentRequest) (*clients.PaymentIntent, error)
	ConstructEvent(payload []byte, sigHeader string) (*clients.WebhookEvent, error)
}

// MailSender delivers rendered receipts.
type MailSender interface {
	Send(ctx context.Context, msg *mail.Message) error
}

// ReceiptCache caches rendered receipts and dedups webhook events.
type ReceiptCache interface {
	SetReceipt(ctx context.Context, orderID, html string) error
	GetReceipt(ctx context.Context, orderID string) (string, error)
	MarkEventProcessed(ctx context.Context, eventID string) (bool, error)
}

// ConfirmOrderRequest is the storefront's order confirmation payload.
type ConfirmOrderRequest struct {
	OrderDetails  receipt.OrderDetails `json:"orderDetails"`
	CustomerEmail string               `json:"customerEmail"`
}

// ConfirmOrderResponse acknowledges a sent confirmation.
type ConfirmOrderResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

// CreateIntentRequest is the storefront's payment intent payload. The
// storefront sends the checkout total as the first item.
type CreateIntentRequest struct {
	Items []IntentItem `json:"items"`
}

// IntentItem is one entry of the payment intent request.
type IntentItem struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	OrderID     string  `json:"orderId"`
}

// CreateIntentResponse carries the processor handle back to the client.
type CreateIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// OrderService handles order confirmations, payment intents, and
// payment webhooks.
type OrderService struct {
	paymentClient PaymentClient
	mailSender    MailSender
	receiptCache  ReceiptCache
	publisher     events.Publisher
	config        *config.Config
	logger        *logging.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	paymentClient PaymentClient,
	mailSender MailSender,
	receiptCache ReceiptCache,
	publisher events.Publisher,
	cfg *config.Config,
) *OrderService {
	return &OrderService{
		paymentClient: paymentClient,
		mailSender:    mailSender,
		receiptCache:  receiptCache,
		publisher:     publisher,
		config:        cfg,
		logger:        logging.New("order-service"),
	}
}

// ConfirmOrder renders the order receipt and emails it to the customer.
func (s *OrderService) ConfirmOrder(ctx context.Context, req *ConfirmOrderRequest) (*ConfirmOrderResponse, error) {
	s.logger.Info("Confirming order", logging.Fields{
		"order_id":   req.OrderDetails.OrderID,
		"item_count": len(req.OrderDetails.Items),
	})

	if err := ValidateConfirmOrderRequest(req); err != nil {
		return nil, err
	}

	view := receipt.ComputeReceipt(&req.OrderDetails)

	html, err := mail.RenderReceipt(view)
	if err != nil {
		s.logger.Error("Failed to render receipt", logging.Fields{
			"order_id": view.OrderID,
			"error":    err.Error(),
		})
		return nil, err
	}

	subject := fmt.Sprintf("Order Confirmation - Order #%s (%s)", view.OrderID, view.PaymentStatus)
	if err := s.sendReceipt(ctx, "order_confirmation", req.CustomerEmail, subject, html); err != nil {
		return nil, err
	}

	if s.config.Features.EnableReceiptCaching && view.OrderID != "" {
		// Log but don't fail; the email already went out.
		if err := s.receiptCache.SetReceipt(ctx, view.OrderID, html); err != nil {
			s.logger.Error("Failed to cache receipt", logging.Fields{
				"order_id": view.OrderID,
				"error":    err.Error(),
			})
		}
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.publisher.PublishOrderConfirmed(ctx, view.OrderID, req.CustomerEmail, view.Total.StringFixed(2)); err != nil {
			s.logger.Error("Failed to publish order confirmed event", logging.Fields{
				"order_id": view.OrderID,
				"error":    err.Error(),
			})
		}
	}

	s.logger.Info("Order confirmation sent", logging.Fields{
		"order_id": view.OrderID,
		"total":    view.Total.StringFixed(2),
	})

	return &ConfirmOrderResponse{
		Success:       true,
		Message:       "Order confirmation sent",
		PaymentStatus: req.OrderDetails.PaymentStatus,
	}, nil
}

// CreatePaymentIntent opens a payment intent for the checkout total.
func (s *OrderService) CreatePaymentIntent(ctx context.Context, req *CreateIntentRequest) (*CreateIntentResponse, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.NewValidationError("items", "no items provided")
	}

	item := req.Items[0]
	cents := int64(math.Round(item.Amount * 100))

	description := item.Description
	if description == "" {
		description = "Order payment"
	}

	intentReq := &clients.CreateIntentRequest{
		Amount:              cents,
		Currency:            "usd",
		CaptureMethod:       "automatic",
		PaymentMethodTypes:  []string{"card"},
		Description:         "COMMENCEMENT DEPOT - " + description,
		StatementDescriptor: "Commencement Depot",
		Metadata: map[string]string{
			"description": description,
			"source":      "COMMENCEMENT DEPOT",
		},
	}
	if item.OrderID != "" {
		intentReq.Metadata["orderId"] = item.OrderID
	}

	intent, err := s.paymentClient.CreatePaymentIntent(ctx, intentReq)
	if err != nil {
		s.logger.Error("Failed to create payment intent", logging.Fields{
			"amount_cents": cents,
			"error":        err.Error(),
		})
		return nil, err
	}

	metrics.PaymentIntents.Inc()

	return &CreateIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// HandlePaymentWebhook verifies and processes a payment processor
// webhook delivery. Duplicate deliveries are acknowledged and dropped.
func (s *OrderService) HandlePaymentWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.paymentClient.ConstructEvent(payload, sigHeader)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues("unknown", "invalid").Inc()
		return apperrors.NewValidationError("signature", err.Error())
	}

	first, err := s.receiptCache.MarkEventProcessed(ctx, event.ID)
	if err != nil {
		// Dedup is best-effort; processing twice beats dropping.
		s.logger.Error("Event dedup check failed", logging.Fields{
			"event_id": event.ID,
			"error":    err.Error(),
		})
	} else if !first {
		s.logger.Info("Duplicate webhook delivery skipped", logging.Fields{
			"event_id": event.ID,
			"type":     event.Type,
		})
		metrics.WebhookEvents.WithLabelValues(event.Type, "duplicate").Inc()
		return nil
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return s.handlePaymentOutcome(ctx, event, true)
	case "payment_intent.payment_failed":
		return s.handlePaymentOutcome(ctx, event, false)
	default:
		s.logger.Info("Unhandled webhook event type", logging.Fields{"type": event.Type})
		metrics.WebhookEvents.WithLabelValues(event.Type, "unhandled").Inc()
		return nil
	}
}

func (s *OrderService) handlePaymentOutcome(ctx context.Context, event *clients.WebhookEvent, succeeded bool) error {
	intent, err := event.PaymentIntent()
	if err != nil {
		metrics.WebhookEvents.WithLabelValues(event.Type, "invalid").Inc()
		return err
	}

	orderID := intent.Metadata["orderId"]
	status := "Paid"
	subject := fmt.Sprintf("Payment Confirmed - Order #%s", orderID)
	outcome := events.EventTypePaymentSucceeded
	kind := "payment_confirmed"
	if !succeeded {
		status = "Failed"
		subject = fmt.Sprintf("Payment Failed - Order #%s", orderID)
		outcome = events.EventTypePaymentFailed
		kind = "payment_failed"
	}

	s.logger.Info("Processing payment outcome", logging.Fields{
		"payment_id": intent.ID,
		"order_id":   orderID,
		"status":     status,
	})

	if intent.ReceiptEmail != "" {
		details := receipt.OrderDetails{
			OrderID:       orderID,
			PaymentStatus: status,
			TotalAmount:   receipt.AmountFromFloat(float64(intent.Amount) / 100),
		}

		html, err := mail.RenderReceipt(receipt.ComputeReceipt(&details))
		if err != nil {
			return err
		}

		// The customer-facing email is best-effort: the processor
		// retries the webhook on a non-2xx, which would double-send.
		if err := s.sendReceipt(ctx, kind, intent.ReceiptEmail, subject, html); err != nil {
			s.logger.Error("Failed to send payment outcome email", logging.Fields{
				"payment_id": intent.ID,
				"error":      err.Error(),
			})
		}
	} else {
		s.logger.Warn("No receipt email on payment intent", logging.Fields{
			"payment_id": intent.ID,
		})
	}

	if s.config.Features.EnableOrderEvents {
		amount := fmt.Sprintf("%.2f", float64(intent.Amount)/100)
		if err := s.publisher.PublishPaymentOutcome(ctx, outcome, orderID, intent.ID, amount); err != nil {
			s.logger.Error("Failed to publish payment outcome event", logging.Fields{
				"payment_id": intent.ID,
				"error":      err.Error(),
			})
		}
	}

	metrics.WebhookEvents.WithLabelValues(event.Type, "handled").Inc()
	return nil
}

// GetReceipt returns the cached rendered receipt for an order.
func (s *OrderService) GetReceipt(ctx context.Context, orderID string) (string, error) {
	html, err := s.receiptCache.GetReceipt(ctx, orderID)
	if err != nil {
		return "", err
	}
	if html == "" {
		return "", apperrors.ErrNotFound
	}
	return html, nil
}

// SendTestEmail sends a fixture receipt to the configured sender
// address so operators can eyeball the template.
func (s *OrderService) SendTestEmail(ctx context.Context) error {
	details := receipt.OrderDetails{
		OrderID:       "TEST-123",
		PaymentStatus: "Pending",
		TotalAmount:   receipt.AmountFromFloat(99.99),
		Items: []receipt.LineItem{
			{Name: "Test Item", Quantity: 1, Price: receipt.AmountFromFloat(99.99), SelectedSize: "M"},
		},
		ShippingAddress: &receipt.Address{
			FullName:     "Test User",
			AddressLine1: "123 Test St",
			City:         "Test City",
			State:        "TS",
			Zip:          "12345",
			Country:      "Test Country",
			Phone:        "123-456-7890",
		},
	}

	html, err := mail.RenderReceipt(receipt.ComputeReceipt(&details))
	if err != nil {
		return err
	}

	return s.sendReceipt(ctx, "test", s.config.SMTP.FromAddress, "Test Email", html)
}

func (s *OrderService) sendReceipt(ctx context.Context, kind, to, subject, html string) error {
	err := s.mailSender.Send(ctx, &mail.Message{
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		metrics.EmailFailures.WithLabelValues(kind).Inc()
		return err
	}
	metrics.EmailsSent.WithLabelValues(kind).Inc()
	return nil
}
