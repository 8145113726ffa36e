package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Generation outcome stored on the record.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Record is the audit row persisted once per generation, success or failure.
type Record struct {
	ID           string
	Caller       string
	CreatedAt    time.Time
	Prompt       string
	DiagramType  string
	Tier         string
	Model        string
	InputTokens  int64
	OutputTokens int64
	CostUSD      float64
	WallMS       int64
	CacheHit     bool
	Formats      []string
	EntityCount  int64
	Lang         string
	Status       string
	FailKind     string
	FailMsg      string
}

const recordSchema = `
CREATE TABLE IF NOT EXISTS generations (
	id            TEXT PRIMARY KEY,
	caller        TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	prompt        TEXT NOT NULL,
	diagram_type  TEXT NOT NULL DEFAULT '',
	tier          TEXT NOT NULL DEFAULT '',
	model         TEXT NOT NULL DEFAULT '',
	input_tokens  INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	cost_usd      REAL NOT NULL DEFAULT 0,
	wall_ms       INTEGER NOT NULL DEFAULT 0,
	cache_hit     INTEGER NOT NULL DEFAULT 0,
	formats       TEXT NOT NULL DEFAULT '',
	entity_count  INTEGER NOT NULL DEFAULT 0,
	lang          TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	fail_kind     TEXT NOT NULL DEFAULT '',
	fail_msg      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS generations_caller_created ON generations(caller, created_at);
`

// Records is the SQLite generation record store.
type Records struct {
	pool *sqlitex.Pool
}

// OpenRecords opens (creating if needed) the record database at path.
func OpenRecords(path string) (*Records, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{PoolSize: 4})
	if err != nil {
		return nil, err
	}

	conn, err := pool.Take(context.Background())
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer pool.Put(conn)
	if err := sqlitex.ExecuteScript(conn, recordSchema, nil); err != nil {
		pool.Close()
		return nil, err
	}
	return &Records{pool: pool}, nil
}

func (r *Records) Close() error {
	return r.pool.Close()
}

// Append persists a record. Appending an id that already exists is a no-op,
// the pipeline may retry persistence safely.
func (r *Records) Append(ctx context.Context, rec Record) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	cacheHit := int64(0)
	if rec.CacheHit {
		cacheHit = 1
	}
	return sqlitex.Execute(conn, `
		INSERT INTO generations (
			id, caller, created_at, prompt, diagram_type, tier, model,
			input_tokens, output_tokens, cost_usd, wall_ms, cache_hit,
			formats, entity_count, lang, status, fail_kind, fail_msg
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		&sqlitex.ExecOptions{Args: []any{
			rec.ID, rec.Caller, rec.CreatedAt.UTC().Format(time.RFC3339),
			rec.Prompt, rec.DiagramType, rec.Tier, rec.Model,
			rec.InputTokens, rec.OutputTokens, rec.CostUSD, rec.WallMS, cacheHit,
			strings.Join(rec.Formats, ","), rec.EntityCount, rec.Lang,
			rec.Status, rec.FailKind, rec.FailMsg,
		}})
}

// MonthlyCount returns how many completed generations the caller ran in the
// calendar month containing t. Failed runs are recorded but never consume
// the monthly allowance.
func (r *Records) MonthlyCount(ctx context.Context, caller string, t time.Time) (int64, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return 0, err
	}
	defer r.pool.Put(conn)

	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var count int64
	err = sqlitex.Execute(conn, `
		SELECT COUNT(*) FROM generations
		WHERE caller = ? AND status = ? AND created_at >= ? AND created_at < ?`,
		&sqlitex.ExecOptions{
			Args: []any{caller, StatusCompleted, start.Format(time.RFC3339), end.Format(time.RFC3339)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			}})
	return count, err
}

// Recent returns the caller's newest records, all callers when caller is
// empty.
func (r *Records) Recent(ctx context.Context, caller string, n int64) ([]Record, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	query := `
		SELECT id, caller, created_at, prompt, diagram_type, tier, model,
			input_tokens, output_tokens, cost_usd, wall_ms, cache_hit,
			formats, entity_count, lang, status, fail_kind, fail_msg
		FROM generations`
	args := []any{}
	if caller != "" {
		query += ` WHERE caller = ?`
		args = append(args, caller)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, n)

	var recs []Record
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			created, err := time.Parse(time.RFC3339, stmt.ColumnText(2))
			if err != nil {
				return err
			}
			var formats []string
			if f := stmt.ColumnText(12); f != "" {
				formats = strings.Split(f, ",")
			}
			recs = append(recs, Record{
				ID:           stmt.ColumnText(0),
				Caller:       stmt.ColumnText(1),
				CreatedAt:    created,
				Prompt:       stmt.ColumnText(3),
				DiagramType:  stmt.ColumnText(4),
				Tier:         stmt.ColumnText(5),
				Model:        stmt.ColumnText(6),
				InputTokens:  stmt.ColumnInt64(7),
				OutputTokens: stmt.ColumnInt64(8),
				CostUSD:      stmt.ColumnFloat(9),
				WallMS:       stmt.ColumnInt64(10),
				CacheHit:     stmt.ColumnInt64(11) != 0,
				Formats:      formats,
				EntityCount:  stmt.ColumnInt64(13),
				Lang:         stmt.ColumnText(14),
				Status:       stmt.ColumnText(15),
				FailKind:     stmt.ColumnText(16),
				FailMsg:      stmt.ColumnText(17),
			})
			return nil
		}})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
