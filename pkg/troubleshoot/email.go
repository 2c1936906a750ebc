package troubleshoot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrz1836/postmark"
)

var (
	ErrInvalidConfig      = errors.New("invalid troubleshooting config")
	ErrFailedToSendReport = errors.New("failed to send troubleshooting report")
)

// emailAPI is the slice of the Postmark client the notifier needs; narrowed
// for testability.
type emailAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// EmailNotifier delivers reports as transactional emails through Postmark.
type EmailNotifier struct {
	client emailAPI
	config Config
	log    *slog.Logger
}

// NewEmailNotifier creates a Postmark-backed notifier. Tokens and addresses
// are required here; use New for automatic fallback to the log notifier.
func NewEmailNotifier(cfg Config, opts ...Option) (*EmailNotifier, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if cfg.RecipientEmail == "" {
		return nil, fmt.Errorf("%w: RecipientEmail is required", ErrInvalidConfig)
	}

	o := newOptions(opts...)
	return &EmailNotifier{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
		log:    o.log,
	}, nil
}

// SendReport implements Notifier. The digest body is plain text; no
// tracking, a troubleshooting report is not marketing mail.
func (n *EmailNotifier) SendReport(ctx context.Context, subject, body string) error {
	resp, err := n.client.SendEmail(ctx, postmark.Email{
		From:     n.config.SenderEmail,
		To:       n.config.RecipientEmail,
		Subject:  subject,
		Tag:      n.config.Tag,
		TextBody: body,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendReport, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendReport,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}

	n.log.InfoContext(ctx, "troubleshooting report sent",
		slog.String("subject", subject),
		slog.String("recipient", n.config.RecipientEmail))
	return nil
}
