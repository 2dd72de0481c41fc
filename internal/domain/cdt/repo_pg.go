package cdt

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

const codeCols = `code, description, category, is_primary, is_active, notes, created_at, updated_at`

func scanCode(row pgx.Row) (*ProcedureCode, error) {
	var c ProcedureCode
	err := row.Scan(
		&c.Code, &c.Description, &c.Category, &c.IsPrimary, &c.IsActive,
		&c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	return &c, err
}

func (r *RepoPG) GetCode(ctx context.Context, code string) (*ProcedureCode, error) {
	q := fmt.Sprintf("SELECT %s FROM cdt_code WHERE code = $1", codeCols)
	c, err := scanCode(r.conn(ctx).QueryRow(ctx, q, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get code %s: %w", code, err)
	}
	return c, nil
}

func (r *RepoPG) ListCodes(ctx context.Context, activeOnly bool) ([]*ProcedureCode, error) {
	q := fmt.Sprintf("SELECT %s FROM cdt_code", codeCols)
	if activeOnly {
		q += " WHERE is_active"
	}
	q += " ORDER BY code"

	rows, err := r.conn(ctx).Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	defer rows.Close()

	var codes []*ProcedureCode
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

func (r *RepoPG) SaveCode(ctx context.Context, code *ProcedureCode) error {
	q := `INSERT INTO cdt_code (code, description, category, is_primary, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (code) DO UPDATE SET
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			is_primary = EXCLUDED.is_primary,
			is_active = EXCLUDED.is_active,
			notes = EXCLUDED.notes,
			updated_at = NOW()`
	_, err := r.conn(ctx).Exec(ctx, q,
		code.Code, code.Description, code.Category, code.IsPrimary, code.IsActive, code.Notes)
	if err != nil {
		return fmt.Errorf("save code %s: %w", code.Code, err)
	}
	return nil
}

const ruleCols = `id, tier, age_group, cdt_code, priority, is_active, notes, created_at, updated_at`

func scanRule(row pgx.Row) (*SelectionRule, error) {
	var sr SelectionRule
	err := row.Scan(
		&sr.ID, &sr.Tier, &sr.AgeGroup, &sr.Code, &sr.Priority, &sr.IsActive,
		&sr.Notes, &sr.CreatedAt, &sr.UpdatedAt,
	)
	return &sr, err
}

func (r *RepoPG) GetActiveRule(ctx context.Context, tier Tier, ageGroup AgeGroup) (*SelectionRule, error) {
	q := fmt.Sprintf(`SELECT %s FROM cdt_rule
		WHERE tier = $1 AND age_group = $2 AND is_active
		ORDER BY priority DESC, updated_at DESC
		LIMIT 1`, ruleCols)
	sr, err := scanRule(r.conn(ctx).QueryRow(ctx, q, tier, ageGroup))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active rule (%s, %s): %w", tier, ageGroup, err)
	}
	return sr, nil
}

func (r *RepoPG) GetRule(ctx context.Context, id uuid.UUID) (*SelectionRule, error) {
	q := fmt.Sprintf("SELECT %s FROM cdt_rule WHERE id = $1", ruleCols)
	sr, err := scanRule(r.conn(ctx).QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rule %s: %w", id, err)
	}
	return sr, nil
}

func (r *RepoPG) ListRules(ctx context.Context, activeOnly bool) ([]*SelectionRule, error) {
	q := fmt.Sprintf("SELECT %s FROM cdt_rule", ruleCols)
	if activeOnly {
		q += " WHERE is_active"
	}
	q += " ORDER BY tier, age_group"

	rows, err := r.conn(ctx).Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	var rules []*SelectionRule
	for rows.Next() {
		sr, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, sr)
	}
	return rules, rows.Err()
}

func (r *RepoPG) CreateRule(ctx context.Context, rule *SelectionRule) error {
	q := `INSERT INTO cdt_rule (id, tier, age_group, cdt_code, priority, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.conn(ctx).Exec(ctx, q,
		rule.ID, rule.Tier, rule.AgeGroup, rule.Code, rule.Priority, rule.IsActive, rule.Notes)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: (%s, %s)", ErrDuplicateActiveRule, rule.Tier, rule.AgeGroup)
	}
	if err != nil {
		return fmt.Errorf("create rule: %w", err)
	}
	return nil
}

func (r *RepoPG) UpdateRule(ctx context.Context, rule *SelectionRule) error {
	q := `UPDATE cdt_rule SET
			tier = $2, age_group = $3, cdt_code = $4, priority = $5,
			is_active = $6, notes = $7, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.conn(ctx).Exec(ctx, q,
		rule.ID, rule.Tier, rule.AgeGroup, rule.Code, rule.Priority, rule.IsActive, rule.Notes)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: (%s, %s)", ErrDuplicateActiveRule, rule.Tier, rule.AgeGroup)
	}
	if err != nil {
		return fmt.Errorf("update rule %s: %w", rule.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update rule %s: no such rule", rule.ID)
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. The partial unique index on (tier, age_group) WHERE is_active
// backs the one-active-rule-per-pair invariant.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
