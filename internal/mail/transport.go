package mail

import (
	"context"
	"errors"
	"fmt"

	"depositor/internal/config"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
)

// Transport delivers a rendered message to a single recipient.
type Transport interface {
	Send(ctx context.Context, to string, msg *Message) error
}

// NewTransport picks the transport named by cfg.Driver.
func NewTransport(cfg config.MailConfig, logger *zap.Logger) (Transport, error) {
	switch cfg.Driver {
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			return nil, errors.New("mailgun driver requires MAILGUN_DOMAIN and MAILGUN_API_KEY")
		}
		return NewMailgunTransport(cfg), nil
	case "log", "":
		return NewLogTransport(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}

type MailgunTransport struct {
	mg   *mailgun.MailgunImpl
	from string
}

func NewMailgunTransport(cfg config.MailConfig) *MailgunTransport {
	mg := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	if cfg.MailgunAPIBase != "" {
		mg.SetAPIBase(cfg.MailgunAPIBase)
	}
	return &MailgunTransport{mg: mg, from: cfg.From}
}

func (t *MailgunTransport) Send(ctx context.Context, to string, msg *Message) error {
	html, text, err := Render(msg)
	if err != nil {
		return err
	}

	m := t.mg.NewMessage(t.from, msg.Subject, text, to)
	m.SetHtml(html)

	if _, _, err := t.mg.Send(ctx, m); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	return nil
}

// LogTransport writes messages to the log instead of delivering them.
type LogTransport struct {
	logger *zap.Logger
}

func NewLogTransport(logger *zap.Logger) *LogTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Send(ctx context.Context, to string, msg *Message) error {
	_, text, err := Render(msg)
	if err != nil {
		return err
	}
	t.logger.Info("mail delivered to log",
		zap.String("to", to),
		zap.String("subject", msg.Subject),
		zap.String("body", text),
	)
	return nil
}
