package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/freshshop/internal/domain"
)

// ContactRepository implements domain.ContactRepository using PostgreSQL.
type ContactRepository struct {
	db *sql.DB
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_form (name, email, subject, message) VALUES ($1, $2, $3, $4)`,
		msg.Name, msg.Email, msg.Subject, msg.Message,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}
