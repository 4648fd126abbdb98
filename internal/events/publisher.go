package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/commencementdepot/storefront-orders-service/internal/config"
	"github.com/commencementdepot/storefront-orders-service/internal/logging"
	"github.com/commencementdepot/storefront-orders-service/internal/middleware"
)

// EventType represents the type of receipt event.
type EventType string

const (
	EventTypeOrderConfirmed   EventType = "order.confirmed"
	EventTypePaymentSucceeded EventType = "payment.succeeded"
	EventTypePaymentFailed    EventType = "payment.failed"
	EventTypeReceiptSent      EventType = "receipt.sent"
)

// ReceiptEvent is a receipt-lifecycle event.
type ReceiptEvent struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	OrderID       string          `json:"order_id"`
	Email         string          `json:"email,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}

// Publisher publishes receipt events.
type Publisher interface {
	PublishOrderConfirmed(ctx context.Context, orderID, email, total string) error
	PublishPaymentOutcome(ctx context.Context, eventType EventType, orderID, paymentID string, amount string) error
	Close() error
}

// KafkaPublisher publishes receipt events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *logging.Logger
}

// NewKafkaPublisher creates a Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *logging.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.ReceiptTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.ReceiptTopic,
		logger: logger,
	}
}

// PublishOrderConfirmed publishes an order confirmation event.
func (p *KafkaPublisher) PublishOrderConfirmed(ctx context.Context, orderID, email, total string) error {
	p.logger.Debug("Publishing order confirmed event", logging.Fields{
		"order_id": orderID,
	})

	data, err := json.Marshal(map[string]string{"total": total})
	if err != nil {
		return err
	}

	event := p.createEvent(ctx, EventTypeOrderConfirmed, orderID, email, data)
	return p.publish(ctx, event)
}

// PublishPaymentOutcome publishes a payment success or failure event.
func (p *KafkaPublisher) PublishPaymentOutcome(ctx context.Context, eventType EventType, orderID, paymentID, amount string) error {
	p.logger.Debug("Publishing payment outcome event", logging.Fields{
		"order_id":   orderID,
		"payment_id": paymentID,
		"type":       eventType,
	})

	data, err := json.Marshal(map[string]string{
		"payment_id": paymentID,
		"amount":     amount,
	})
	if err != nil {
		return err
	}

	event := p.createEvent(ctx, eventType, orderID, "", data)
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) createEvent(ctx context.Context, eventType EventType, orderID, email string, data []byte) *ReceiptEvent {
	return &ReceiptEvent{
		ID:            "evt_" + uuid.NewString(),
		Type:          eventType,
		OrderID:       orderID,
		Email:         email,
		Data:          data,
		Timestamp:     time.Now(),
		CorrelationID: middleware.FromContext(ctx),
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, event *ReceiptEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"order_id":   event.OrderID,
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Info("Event published", logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"order_id":   event.OrderID,
	})

	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

// MockPublisher is a mock implementation for testing.
type MockPublisher struct {
	Events []*ReceiptEvent
}

// NewMockPublisher creates an empty mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]*ReceiptEvent, 0)}
}

func (m *MockPublisher) PublishOrderConfirmed(ctx context.Context, orderID, email, total string) error {
	m.Events = append(m.Events, &ReceiptEvent{
		Type:    EventTypeOrderConfirmed,
		OrderID: orderID,
		Email:   email,
	})
	return nil
}

func (m *MockPublisher) PublishPaymentOutcome(ctx context.Context, eventType EventType, orderID, paymentID, amount string) error {
	m.Events = append(m.Events, &ReceiptEvent{
		Type:    eventType,
		OrderID: orderID,
	})
	return nil
}

func (m *MockPublisher) Close() error { return nil }
