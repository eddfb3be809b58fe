package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps one row per leaf, keyed by its full path. Subtrees are
// reassembled on read with a range scan over the primary key.
type SQLiteStore struct{ db *sqlx.DB }

type nodeRow struct {
	Path  string `db:"path"`
	Value string `db:"value"`
}

func OpenDB(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: keeps :memory: databases shared and serializes the
	// write transactions below.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS nodes(
  path TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// subtree matches the path itself and everything below it. '0' is the byte
// after '/', so the range covers exactly the "path/..." keys.
func subtree(p string) (string, []any) {
	if p == "" {
		return "1=1", nil
	}
	return "(path = ? OR (path > ? AND path < ?))", []any{p, p + "/", p + "0"}
}

func (s *SQLiteStore) Get(ctx context.Context, path string) (any, error) {
	p, err := Clean(path)
	if err != nil {
		return nil, err
	}
	where, args := subtree(p)
	var rows []nodeRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT path, value FROM nodes WHERE `+where+` ORDER BY path`, args...); err != nil {
		return nil, fmt.Errorf("get %q: %w", p, err)
	}
	return assemble(p, rows)
}

func (s *SQLiteStore) Set(ctx context.Context, path string, value any) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sqlx.Tx) error { return writeTree(ctx, tx, p, value) })
}

// Update writes each field as a child of path; a nil field removes the child.
func (s *SQLiteStore) Update(ctx context.Context, path string, fields map[string]any) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	for k := range fields {
		if !ValidKey(k) {
			return fmt.Errorf("%w: field %q", ErrBadPath, k)
		}
	}
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, k := range SortedKeys(fields) {
			if err := writeTree(ctx, tx, Join(p, k), fields[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes path and its subtree. Deleting a missing path succeeds.
func (s *SQLiteStore) Delete(ctx context.Context, path string) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sqlx.Tx) error { return deleteTree(ctx, tx, p) })
}

func (s *SQLiteStore) CreateIfAbsent(ctx context.Context, path string, value any) (bool, error) {
	p, err := Clean(path)
	if err != nil {
		return false, err
	}
	if p == "" {
		return false, fmt.Errorf("%w: create at root", ErrBadPath)
	}
	created := false
	err = s.inTx(ctx, func(tx *sqlx.Tx) error {
		where, args := subtree(p)
		var n int
		if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM nodes WHERE `+where, args...); err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		created = true
		return writeTree(ctx, tx, p, value)
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteTree(ctx context.Context, tx *sqlx.Tx, p string) error {
	where, args := subtree(p)
	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE `+where, args...); err != nil {
		return fmt.Errorf("delete %q: %w", p, err)
	}
	return nil
}

func writeTree(ctx context.Context, tx *sqlx.Tx, p string, value any) error {
	if err := deleteTree(ctx, tx, p); err != nil {
		return err
	}
	leaves := map[string]any{}
	if err := flatten(p, value, leaves); err != nil {
		return err
	}
	if len(leaves) == 0 {
		return nil
	}
	// A scalar sitting on an ancestor path is replaced by the new subtree.
	segs := strings.Split(p, "/")
	for i := 1; i < len(segs); i++ {
		if _, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE path = ?`, strings.Join(segs[:i], "/")); err != nil {
			return err
		}
	}
	for _, path := range SortedKeys(leaves) {
		b, err := json.Marshal(leaves[path])
		if err != nil {
			return fmt.Errorf("encode %q: %w", path, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO nodes(path, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)`, path, string(b)); err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
	}
	return nil
}

func flatten(p string, v any, out map[string]any) error {
	switch x := v.(type) {
	case nil:
		return nil
	case map[string]any:
		for k, child := range x {
			if !ValidKey(k) {
				return fmt.Errorf("%w: key %q under %q", ErrBadPath, k, p)
			}
			if err := flatten(Join(p, k), child, out); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, child := range x {
			if err := flatten(Join(p, strconv.Itoa(i)), child, out); err != nil {
				return err
			}
		}
		return nil
	case string, bool, float64, float32, int, int32, int64, json.Number:
		if p == "" {
			return fmt.Errorf("%w: scalar at root", ErrBadPath)
		}
		out[p] = x
		return nil
	default:
		// Structs and typed maps go through their JSON form.
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Errorf("encode %q: %w", p, err)
		}
		var norm any
		if err := json.Unmarshal(b, &norm); err != nil {
			return err
		}
		return flatten(p, norm, out)
	}
}

func assemble(p string, rows []nodeRow) (any, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows) == 1 && rows[0].Path == p {
		return decodeLeaf(rows[0].Value)
	}
	root := map[string]any{}
	for _, r := range rows {
		if r.Path == p {
			continue
		}
		rel := r.Path
		if p != "" {
			rel = strings.TrimPrefix(r.Path, p+"/")
		}
		v, err := decodeLeaf(r.Value)
		if err != nil {
			return nil, fmt.Errorf("decode %q: %w", r.Path, err)
		}
		insert(root, strings.Split(rel, "/"), v)
	}
	return root, nil
}

func insert(m map[string]any, segs []string, v any) {
	for _, seg := range segs[:len(segs)-1] {
		child, ok := m[seg].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[seg] = child
		}
		m = child
	}
	m[segs[len(segs)-1]] = v
}

func decodeLeaf(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}
