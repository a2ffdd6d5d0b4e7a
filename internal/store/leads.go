package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acucogn/site/internal/model"
)

// LeadRepository writes contact form submissions.
type LeadRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewLeadRepository creates a LeadRepository.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db, now: time.Now}
}

// Insert stores one submission, assigning its ID and creation time.
func (r *LeadRepository) Insert(ctx context.Context, lead *model.LeadSubmission) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = r.now().UTC()
	}

	query := r.db.Rebind(`INSERT INTO contact_submissions
		(id, name, email, company, phone, service, budget, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Email,
		nullable(lead.Company), nullable(lead.Phone),
		string(lead.Service), nullable(lead.Budget),
		lead.Message, lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting contact submission: %w", err)
	}
	return nil
}

// Count returns the number of stored submissions.
func (r *LeadRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM contact_submissions`); err != nil {
		return 0, fmt.Errorf("counting contact submissions: %w", err)
	}
	return n, nil
}
