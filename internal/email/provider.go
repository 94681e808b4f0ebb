// Package email delivers transactional mail. Delivery shares the relay's
// contract: at-most-once, never blocking or unwinding the primary operation.
package email

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

// Provider sends email. The SMTP provider is used when email is enabled in
// config; otherwise the app wires a mock.
type Provider interface {
	Send(msg *Message) error
}
