package app

import "piwork_backend/internal/email"

// MockEmailProvider is wired when email is disabled in config (local
// development, tests). It accepts everything and sends nothing.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Message) error { return nil }
