package troubleshoot

import (
	"context"
	"log/slog"
)

// Notifier delivers one troubleshooting report. Implementations must be safe
// for concurrent use.
type Notifier interface {
	SendReport(ctx context.Context, subject, body string) error
}

// Config holds the notifier configuration. The Postmark tokens are optional:
// without them New falls back to the log notifier, supporting development
// environments where email sending is disabled.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"TROUBLESHOOTING_SENDER_EMAIL"`
	RecipientEmail       string `env:"TROUBLESHOOTING_RECIPIENT_EMAIL"`
	Tag                  string `env:"TROUBLESHOOTING_TAG" envDefault:"multitenancy-persistence"`
}

// New builds the notifier for the configuration: email-backed when the
// Postmark tokens are present, log-backed otherwise.
func New(cfg Config, opts ...Option) (Notifier, error) {
	if cfg.PostmarkServerToken == "" || cfg.PostmarkAccountToken == "" {
		o := newOptions(opts...)
		return NewLogNotifier(o.log), nil
	}
	return NewEmailNotifier(cfg, opts...)
}

// LogNotifier writes reports to the structured log. Used when no outbound
// email is configured; the digest still reaches the operator via log
// aggregation.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

// SendReport implements Notifier.
func (n *LogNotifier) SendReport(ctx context.Context, subject, body string) error {
	n.log.ErrorContext(ctx, "troubleshooting report",
		slog.String("subject", subject),
		slog.String("body", body))
	return nil
}

type options struct {
	log *slog.Logger
}

// Option configures notifier construction.
type Option func(*options)

// WithLogger sets the logger used by the notifiers.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
