package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/freshshop/internal/domain"
)

// ContactRepository implements domain.ContactRepository using SQLite.
type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db.SqlDB}
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_form (name, email, subject, message, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		msg.Name, msg.Email, msg.Subject, msg.Message, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}
