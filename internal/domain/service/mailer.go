package service

import "context"

// MailMessage is an outgoing transactional email.
type MailMessage struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, msg *MailMessage) error
}
