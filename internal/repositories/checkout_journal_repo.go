package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"shoepos/internal/models"
)

// DBTX is the subset of pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const defaultJournalLimit = 50

type CheckoutJournalRepository interface {
	// Create records one checkout attempt
	Create(ctx context.Context, entry *models.CheckoutJournalEntry) error

	// ListRecent returns the newest entries first
	ListRecent(ctx context.Context, limit int) ([]models.CheckoutJournalEntry, error)

	// ListByStatus returns the newest entries with the given status
	ListByStatus(ctx context.Context, status string, limit int) ([]models.CheckoutJournalEntry, error)
}

type checkoutJournalRepo struct {
	db DBTX
}

func NewCheckoutJournalRepo(db DBTX) CheckoutJournalRepository {
	return &checkoutJournalRepo{db: db}
}

func (r *checkoutJournalRepo) Create(ctx context.Context, entry *models.CheckoutJournalEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO checkout_journal (id, session_id, order_id, customer_id, employee_id, total_amount, line_count, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.SessionID,
		entry.OrderID,
		entry.CustomerID,
		entry.EmployeeID,
		entry.TotalAmount,
		entry.LineCount,
		entry.Status,
		entry.Error,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert checkout journal entry: %w", err)
	}
	return nil
}

func (r *checkoutJournalRepo) ListRecent(ctx context.Context, limit int) ([]models.CheckoutJournalEntry, error) {
	query := `
		SELECT id, session_id, order_id, customer_id, employee_id, total_amount, line_count, status, error, created_at
		FROM checkout_journal
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query checkout journal: %w", err)
	}
	return scanJournalEntries(rows)
}

func (r *checkoutJournalRepo) ListByStatus(ctx context.Context, status string, limit int) ([]models.CheckoutJournalEntry, error) {
	query := `
		SELECT id, session_id, order_id, customer_id, employee_id, total_amount, line_count, status, error, created_at
		FROM checkout_journal
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, status, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query checkout journal: %w", err)
	}
	return scanJournalEntries(rows)
}

func scanJournalEntries(rows pgx.Rows) ([]models.CheckoutJournalEntry, error) {
	defer rows.Close()

	entries := make([]models.CheckoutJournalEntry, 0)
	for rows.Next() {
		var e models.CheckoutJournalEntry
		if err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.OrderID,
			&e.CustomerID,
			&e.EmployeeID,
			&e.TotalAmount,
			&e.LineCount,
			&e.Status,
			&e.Error,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan checkout journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return defaultJournalLimit
	}
	return limit
}
