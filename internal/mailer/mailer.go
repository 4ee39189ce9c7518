// Package mailer delivers a rendered report to the operator via SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/alplog/sysstatus/internal/config"
)

// Send emails the report body to the configured recipient. The subject
// names the host so operator inboxes can be filtered per machine.
func Send(ctx context.Context, cfg config.Mail, hostname, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(cfg.From); err != nil {
		return fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(cfg.To); err != nil {
		return fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("System status for %s", hostname))
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send to %s: %w", cfg.To, err)
	}
	return nil
}
