package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const auditCols = `id, user_id, document_type, document_version, input_data, output_data,
	model_used, tokens_used, generation_time_ms, status, error_message,
	seed, is_regenerated, previous_version_uuid, created_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.DocumentType, &rec.DocumentVersion,
		&rec.InputData, &rec.OutputData,
		&rec.ModelUsed, &rec.TokensUsed, &rec.GenerationMS, &rec.Status, &rec.ErrorMessage,
		&rec.Seed, &rec.IsRegenerated, &rec.PreviousVersion, &rec.CreatedAt,
	)
	return &rec, err
}

func (r *RepoPG) Append(ctx context.Context, rec *Record) error {
	q := `INSERT INTO audit_log (id, user_id, document_type, document_version,
			input_data, output_data, model_used, tokens_used, generation_time_ms,
			status, error_message, seed, is_regenerated, previous_version_uuid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.conn(ctx).Exec(ctx, q,
		rec.ID, rec.UserID, rec.DocumentType, rec.DocumentVersion,
		rec.InputData, rec.OutputData, rec.ModelUsed, rec.TokensUsed, rec.GenerationMS,
		rec.Status, rec.ErrorMessage, rec.Seed, rec.IsRegenerated, rec.PreviousVersion, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

func (r *RepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	q := fmt.Sprintf("SELECT %s FROM audit_log WHERE id = $1", auditCols)
	rec, err := scanRecord(r.conn(ctx).QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get audit record %s: %w", id, err)
	}
	return rec, nil
}

func (r *RepoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Record, int, error) {
	where := []string{}
	args := []interface{}{}
	idx := 1

	if f.UserID != "" {
		where = append(where, fmt.Sprintf("user_id = $%d", idx))
		args = append(args, f.UserID)
		idx++
	}
	if f.DocumentType != "" {
		where = append(where, fmt.Sprintf("document_type = $%d", idx))
		args = append(args, f.DocumentType)
		idx++
	}
	if f.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", idx))
		args = append(args, f.Status)
		idx++
	}
	if f.From != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", idx))
		args = append(args, *f.From)
		idx++
	}
	if f.To != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", idx))
		args = append(args, *f.To)
		idx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	countQ := fmt.Sprintf("SELECT COUNT(*) FROM audit_log %s", whereClause)
	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit records: %w", err)
	}

	q := fmt.Sprintf(`SELECT %s FROM audit_log %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, auditCols, whereClause, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var recs []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan audit record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, total, rows.Err()
}
