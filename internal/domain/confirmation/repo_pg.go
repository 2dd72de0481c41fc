package confirmation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bitesoft/docgen/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type RepoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) *RepoPG {
	return &RepoPG{pool: pool}
}

func (r *RepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const confirmationCols = `id, generation_id, user_id, document_type, document_version,
	confirmed_at, confirmed_payload, notes, pdf_generated_at`

func scanConfirmation(row pgx.Row) (*Confirmation, error) {
	var c Confirmation
	err := row.Scan(
		&c.ID, &c.GenerationID, &c.UserID, &c.DocumentType, &c.DocumentVersion,
		&c.ConfirmedAt, &c.ConfirmedPayload, &c.Notes, &c.PDFGeneratedAt,
	)
	return &c, err
}

func (r *RepoPG) Create(ctx context.Context, conf *Confirmation) error {
	q := `INSERT INTO document_confirmation (id, generation_id, user_id, document_type,
			document_version, confirmed_at, confirmed_payload, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.conn(ctx).Exec(ctx, q,
		conf.ID, conf.GenerationID, conf.UserID, conf.DocumentType,
		conf.DocumentVersion, conf.ConfirmedAt, conf.ConfirmedPayload, conf.Notes)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrAlreadyConfirmed, conf.GenerationID)
	}
	if err != nil {
		return fmt.Errorf("create confirmation: %w", err)
	}
	return nil
}

func (r *RepoPG) GetByGenerationID(ctx context.Context, generationID uuid.UUID) (*Confirmation, error) {
	q := fmt.Sprintf("SELECT %s FROM document_confirmation WHERE generation_id = $1", confirmationCols)
	c, err := scanConfirmation(r.conn(ctx).QueryRow(ctx, q, generationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get confirmation for %s: %w", generationID, err)
	}
	return c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
