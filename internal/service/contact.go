package service

import (
	"context"
	"fmt"

	"github.com/msomdec/freshshop/internal/domain"
)

// ContactService stores contact form submissions.
type ContactService struct {
	contacts domain.ContactRepository
}

func NewContactService(contacts domain.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

// Submit stores one message. Fields are stored as given.
func (s *ContactService) Submit(ctx context.Context, msg domain.ContactMessage) error {
	if err := s.contacts.Create(ctx, &msg); err != nil {
		return fmt.Errorf("submit contact message: %w", err)
	}
	return nil
}
