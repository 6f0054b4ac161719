package deals

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/outcome"
	"github.com/blackwell-systems/outcome/crmerr"
	outpgx "github.com/blackwell-systems/outcome/integrations/pgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var dealErrors = outpgx.Mapper{
	Entity:   "Deal",
	NotFound: crmerr.DealNotFound,
	Constraints: map[string]outcome.Error{
		"deals_name_key":       crmerr.DealDuplicateName,
		"deals_value_positive": crmerr.DealValueInvalid,
	},
}

const dealColumns = `id, name, value, stage, archived, created_at, updated_at`

// PostgresStore keeps deals in PostgreSQL.
type PostgresStore struct {
	DB DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// EnsureSchema creates the deals table and its indexes if missing.
func EnsureSchema(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS deals (
  id text PRIMARY KEY,
  name text NOT NULL,
  value bigint NOT NULL CONSTRAINT deals_value_positive CHECK (value > 0),
  stage text NOT NULL,
  archived boolean NOT NULL DEFAULT false,
  created_at timestamptz NOT NULL,
  updated_at timestamptz NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS deals_name_key ON deals (lower(name));`)
	if err != nil {
		return fmt.Errorf("ensure deals schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, d Deal) (outcome.Result, error) {
	tag, err := s.DB.Exec(ctx, `INSERT INTO deals(`+dealColumns+`) VALUES($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Name, d.Value, string(d.Stage), d.Archived, d.CreatedAt, d.UpdatedAt)
	return dealErrors.Exec(tag, err)
}

func (s *PostgresStore) Get(ctx context.Context, id string) (outcome.Value[Deal], error) {
	d, err := scanDeal(s.DB.QueryRow(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = $1`, id))
	return outpgx.Row(dealErrors, d, err)
}

func (s *PostgresStore) List(ctx context.Context, p outcome.PageParams) ([]Deal, int, error) {
	const filter = `WHERE $1 = '' OR name ILIKE '%' || $1 || '%'`

	var total int
	if err := s.DB.QueryRow(ctx, `SELECT count(*) FROM deals `+filter, p.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deals: %w", err)
	}

	rows, err := s.DB.Query(ctx, `SELECT `+dealColumns+` FROM deals `+filter+`
        ORDER BY created_at, id LIMIT $2 OFFSET $3`, p.Search, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	var items []Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan deal: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list deals: %w", err)
	}
	return items, total, nil
}

func (s *PostgresStore) Update(ctx context.Context, d Deal) (outcome.Result, error) {
	tag, err := s.DB.Exec(ctx, `UPDATE deals SET name = $2, value = $3, stage = $4, archived = $5, updated_at = $6
        WHERE id = $1`, d.ID, d.Name, d.Value, string(d.Stage), d.Archived, d.UpdatedAt)
	return dealErrors.Exec(tag, err)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (outcome.Result, error) {
	tag, err := s.DB.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	return dealErrors.Exec(tag, err)
}

func scanDeal(row pgx.Row) (Deal, error) {
	var d Deal
	var stage string
	if err := row.Scan(&d.ID, &d.Name, &d.Value, &stage, &d.Archived, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return Deal{}, err
	}
	d.Stage = Stage(stage)
	return d, nil
}

var _ Store = (*PostgresStore)(nil)
