package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/db"
	"github.com/polygonid/wallet-mediator/internal/db/schema"
)

type sqliteBackend struct {
	conn  *db.SQLite
	locks *keyLocks
}

// NewSQLiteProfiles returns a tenant store backed by sqlite. Migrations are applied on the writer connection.
func NewSQLiteProfiles(conn *db.SQLite, sealer *Sealer) (*Profiles, error) {
	if err := schema.MigrateDB(conn.Writer.DB, schema.DialectSQLite); err != nil {
		return nil, err
	}
	return newProfiles(&sqliteBackend{conn: conn, locks: newKeyLocks()}, sealer), nil
}

func (s *sqliteBackend) createProfile(ctx context.Context, tenant string) error {
	_, err := s.conn.Writer.ExecContext(ctx, `INSERT INTO profiles (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, tenant)
	return err
}

func (s *sqliteBackend) removeProfile(ctx context.Context, tenant string) error {
	tx, err := s.conn.Writer.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE profile = ?`, tenant); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, tenant); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqliteBackend) get(ctx context.Context, tenant string, category domain.Category, key string) (entry, bool, error) {
	return sqliteGet(ctx, s.conn.Reader, tenant, category, key)
}

func (s *sqliteBackend) list(ctx context.Context, tenant string, category domain.Category, tags domain.Tags) ([]entry, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT value, tags FROM entries WHERE profile = ? AND category = ?`)
	args := []any{tenant, string(category)}

	names := make([]string, 0, len(tags))
	for k := range tags {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		query.WriteString(` AND json_extract(tags, ?) = ?`)
		args = append(args, tagPath(k), tags[k])
	}
	query.WriteString(` ORDER BY id`)

	var rows []sqliteEntry
	if err := s.conn.Reader.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, err
	}
	out := make([]entry, 0, len(rows))
	for _, row := range rows {
		e, err := row.entry()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *sqliteBackend) withKey(ctx context.Context, tenant string, category domain.Category, key string, fn func(tx keyTx) error) error {
	unlock := s.locks.lock(tenant, category, key)
	defer unlock()

	tx, err := s.conn.Writer.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	err = tx.GetContext(ctx, &one, `SELECT 1 FROM profiles WHERE name = ?`, tenant)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTenantNotFound
	}
	if err != nil {
		return err
	}

	if err := fn(&sqliteKeyTx{tx: tx, tenant: tenant, category: category, key: key}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqliteBackend) ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

func (s *sqliteBackend) close() error {
	return s.conn.Close()
}

type sqliteKeyTx struct {
	tx       *sqlx.Tx
	tenant   string
	category domain.Category
	key      string
}

func (k *sqliteKeyTx) get(ctx context.Context) (entry, bool, error) {
	return sqliteGet(ctx, k.tx, k.tenant, k.category, k.key)
}

func (k *sqliteKeyTx) put(ctx context.Context, e entry, exists bool) error {
	tags, err := json.Marshal(e.tags)
	if err != nil {
		return err
	}
	if exists {
		_, err = k.tx.ExecContext(ctx,
			`UPDATE entries SET value = ?, tags = ?, updated_at = CURRENT_TIMESTAMP
			WHERE profile = ? AND category = ? AND name = ?`,
			e.value, string(tags), k.tenant, string(k.category), k.key)
		return err
	}
	_, err = k.tx.ExecContext(ctx,
		`INSERT INTO entries (profile, category, name, value, tags) VALUES (?, ?, ?, ?, ?)`,
		k.tenant, string(k.category), k.key, e.value, string(tags))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrAlreadyExists
	}
	return err
}

func (k *sqliteKeyTx) del(ctx context.Context) error {
	_, err := k.tx.ExecContext(ctx, `DELETE FROM entries WHERE profile = ? AND category = ? AND name = ?`,
		k.tenant, string(k.category), k.key)
	return err
}

// sqliteEntry is a row of the entries table. Tags are stored as a json object.
type sqliteEntry struct {
	Value []byte `db:"value"`
	Tags  string `db:"tags"`
}

func (r sqliteEntry) entry() (entry, error) {
	e := entry{value: r.Value, tags: domain.Tags{}}
	if err := json.Unmarshal([]byte(r.Tags), &e.tags); err != nil {
		return entry{}, fmt.Errorf("decoding tags: %w", err)
	}
	return e, nil
}

func sqliteGet(ctx context.Context, q sqlx.QueryerContext, tenant string, category domain.Category, key string) (entry, bool, error) {
	var row sqliteEntry
	err := sqlx.GetContext(ctx, q, &row, `SELECT value, tags FROM entries WHERE profile = ? AND category = ? AND name = ?`,
		tenant, string(category), key)
	if errors.Is(err, sql.ErrNoRows) {
		return entry{}, false, nil
	}
	if err != nil {
		return entry{}, false, err
	}
	e, err := row.entry()
	return e, err == nil, err
}

// tagPath returns the json path of a top level tag name
func tagPath(name string) string {
	return `$."` + strings.ReplaceAll(name, `"`, `\"`) + `"`
}
