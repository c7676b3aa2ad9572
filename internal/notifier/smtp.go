package notifier

import (
	"crypto/tls"
	"fmt"

	"github.com/riskgate/riskgate/internal/models"

	"github.com/wneessen/go-mail"
)

// SMTPNotifier renders a template and sends it through the configured relay.
type SMTPNotifier struct {
	config models.MailerConfiguration
}

func NewSMTPNotifier(config models.MailerConfiguration) *SMTPNotifier {
	return &SMTPNotifier{config: config}
}

func (s *SMTPNotifier) NotifyFromTemplate(
	to string,
	subject string,
	templateName string,
	data any,
) error {
	body, err := renderTemplate(templateName, data)
	if err != nil {
		return err
	}

	message := mail.NewMsg()
	if err = message.From(s.config.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err = message.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	message.Subject(subject)
	message.SetBodyString(mail.TypeTextHTML, body)

	options := []mail.Option{mail.WithPort(s.config.Port)}
	if s.config.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.config.Username),
			mail.WithPassword(s.config.Password),
		)
	}
	if s.config.EnableTLS {
		options = append(options, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		options = append(options, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if s.config.SkipVerifyTLS {
		options = append(options, mail.WithTLSConfig(&tls.Config{InsecureSkipVerify: true})) //nolint:gosec // operator opt-in
	}

	client, err := mail.NewClient(s.config.Host, options...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	return client.DialAndSend(message)
}
