package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"

	"github.com/commencementdepot/storefront-orders-service/internal/config"
	"github.com/commencementdepot/storefront-orders-service/internal/logging"
)

// Message is one transactional email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// SMTPSender sends transactional email over SMTP.
type SMTPSender struct {
	client      *gomail.Client
	fromName    string
	fromAddress string
	logger      *logging.Logger
}

// NewSMTPSender creates an SMTP sender from config.
func NewSMTPSender(cfg config.SMTPConfig, logger *logging.Logger) (*SMTPSender, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, err
	}

	return &SMTPSender{
		client:      client,
		fromName:    cfg.FromName,
		fromAddress: cfg.FromAddress,
		logger:      logger,
	}, nil
}

// Send delivers one message through the SMTP transport.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	m := gomail.NewMsg()
	if err := m.FromFormat(s.fromName, s.fromAddress); err != nil {
		return err
	}
	if err := m.To(msg.To); err != nil {
		return err
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("Failed to send email", logging.Fields{
			"to":    msg.To,
			"error": err.Error(),
		})
		return err
	}

	s.logger.Info("Email sent", logging.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}

// MockSender records messages instead of delivering them.
type MockSender struct {
	Messages []*Message
	Err      error
}

// NewMockSender creates an empty mock sender.
func NewMockSender() *MockSender {
	return &MockSender{Messages: make([]*Message, 0)}
}

func (m *MockSender) Send(ctx context.Context, msg *Message) error {
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msg)
	return nil
}
