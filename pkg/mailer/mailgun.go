package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun delivers the transactional mail this API enqueues: the welcome
// message on registration and the notification a user receives when a
// vehicle is shared with them.
type Mailgun struct {
	sender string
	client *mg.MailgunImpl
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{sender: sender, client: mg.NewMailgun(domain, apiKey)}
}

// Send delivers a single message. html is optional. A deadline is applied
// when the caller did not bring one; notification mail is not worth a long
// wait and the queue redelivers on failure.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}
	_, _, err := m.client.Send(ctx, msg)
	return err
}
