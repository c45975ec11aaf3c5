package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/db"
)

const duplicateViolationErrorCode = "23505"

type postgresBackend struct {
	conn *db.Storage
}

// NewPostgresProfiles returns a tenant store backed by postgres. The schema is created by cmd/migrate.
func NewPostgresProfiles(conn *db.Storage, sealer *Sealer) *Profiles {
	return newProfiles(&postgresBackend{conn: conn}, sealer)
}

func (p *postgresBackend) createProfile(ctx context.Context, tenant string) error {
	_, err := p.conn.Pgx.Exec(ctx, `INSERT INTO profiles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, tenant)
	return err
}

func (p *postgresBackend) removeProfile(ctx context.Context, tenant string) error {
	_, err := p.conn.Pgx.Exec(ctx, `DELETE FROM profiles WHERE name = $1`, tenant)
	return err
}

func (p *postgresBackend) get(ctx context.Context, tenant string, category domain.Category, key string) (entry, bool, error) {
	return postgresGet(ctx, p.conn.Pgx, tenant, category, key, false)
}

func (p *postgresBackend) list(ctx context.Context, tenant string, category domain.Category, tags domain.Tags) ([]entry, error) {
	filter, err := tagsJSONB(tags)
	if err != nil {
		return nil, err
	}
	rows, err := p.conn.Pgx.Query(ctx,
		`SELECT value, tags FROM entries
		WHERE profile = $1 AND category = $2 AND tags @> $3
		ORDER BY id`,
		tenant, string(category), filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entry, 0)
	for rows.Next() {
		e, err := scanPostgresEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// withKey serializes writers of one entry with a transaction scoped advisory lock,
// which also covers inserts of rows that do not exist yet.
func (p *postgresBackend) withKey(ctx context.Context, tenant string, category domain.Category, key string, fn func(tx keyTx) error) error {
	return p.conn.Pgx.BeginFunc(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, tenant+"|"+string(category)+"|"+key); err != nil {
			return fmt.Errorf("locking entry: %w", err)
		}
		var one int
		err := tx.QueryRow(ctx, `SELECT 1 FROM profiles WHERE name = $1`, tenant).Scan(&one)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTenantNotFound
		}
		if err != nil {
			return err
		}
		return fn(&postgresKeyTx{tx: tx, tenant: tenant, category: category, key: key})
	})
}

func (p *postgresBackend) ping(ctx context.Context) error {
	return p.conn.Ping(ctx)
}

func (p *postgresBackend) close() error {
	return p.conn.Close()
}

type postgresKeyTx struct {
	tx       pgx.Tx
	tenant   string
	category domain.Category
	key      string
}

func (k *postgresKeyTx) get(ctx context.Context) (entry, bool, error) {
	return postgresGet(ctx, k.tx, k.tenant, k.category, k.key, true)
}

func (k *postgresKeyTx) put(ctx context.Context, e entry, exists bool) error {
	tags, err := tagsJSONB(e.tags)
	if err != nil {
		return err
	}
	if exists {
		_, err = k.tx.Exec(ctx,
			`UPDATE entries SET value = $4, tags = $5, updated_at = CURRENT_TIMESTAMP
			WHERE profile = $1 AND category = $2 AND name = $3`,
			k.tenant, string(k.category), k.key, e.value, tags)
		return err
	}
	_, err = k.tx.Exec(ctx,
		`INSERT INTO entries (profile, category, name, value, tags) VALUES ($1, $2, $3, $4, $5)`,
		k.tenant, string(k.category), k.key, e.value, tags)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == duplicateViolationErrorCode {
			return ErrAlreadyExists
		}
	}
	return err
}

func (k *postgresKeyTx) del(ctx context.Context) error {
	_, err := k.tx.Exec(ctx, `DELETE FROM entries WHERE profile = $1 AND category = $2 AND name = $3`,
		k.tenant, string(k.category), k.key)
	return err
}

func postgresGet(ctx context.Context, conn db.Querier, tenant string, category domain.Category, key string, forUpdate bool) (entry, bool, error) {
	sql := `SELECT value, tags FROM entries WHERE profile = $1 AND category = $2 AND name = $3`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	e, err := scanPostgresEntry(conn.QueryRow(ctx, sql, tenant, string(category), key))
	if errors.Is(err, pgx.ErrNoRows) {
		return entry{}, false, nil
	}
	if err != nil {
		return entry{}, false, err
	}
	return e, true, nil
}

func scanPostgresEntry(row pgx.Row) (entry, error) {
	var value []byte
	var tags pgtype.JSONB
	if err := row.Scan(&value, &tags); err != nil {
		return entry{}, err
	}
	e := entry{value: value, tags: domain.Tags{}}
	if tags.Status == pgtype.Present {
		if err := json.Unmarshal(tags.Bytes, &e.tags); err != nil {
			return entry{}, fmt.Errorf("decoding tags: %w", err)
		}
	}
	return e, nil
}

func tagsJSONB(tags domain.Tags) (pgtype.JSONB, error) {
	raw, err := json.Marshal(nonNilTags(tags))
	if err != nil {
		return pgtype.JSONB{}, err
	}
	return pgtype.JSONB{Bytes: raw, Status: pgtype.Present}, nil
}
