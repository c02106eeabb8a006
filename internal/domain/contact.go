package domain

import "context"

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactRepository stores contact form submissions. Messages are never read back.
type ContactRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
}
