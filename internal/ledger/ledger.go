// Package ledger journals weight lifecycle events to SQLite. Recording is
// best-effort from the caller's point of view: the daemon logs a failed write
// and carries on.
package ledger

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"anomalyd/pkg/types"
)

// Lifecycle actions recorded per weight.
const (
	ActionDownload          = "download"
	ActionCacheHit          = "cache_hit"
	ActionCorruptRedownload = "corrupt_redownload"
	ActionVerifyOK          = "verify_ok"
	ActionVerifyFail        = "verify_fail"
	ActionEvict             = "evict"
)

type Ledger struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

// Disabled returns a ledger whose operations are all no-ops. Used when no
// ledger path is configured.
func Disabled() *Ledger { return &Ledger{} }

func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

func (l *Ledger) migrate() error {
	_, err := l.db.Exec(`
CREATE TABLE IF NOT EXISTS fetch_events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  action TEXT NOT NULL,
  path TEXT NOT NULL DEFAULT '',
  checksum TEXT NOT NULL DEFAULT '',
  size_bytes INTEGER NOT NULL DEFAULT 0,
  created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fetch_events_name ON fetch_events(name);
`)
	return err
}

// Record appends one event.
func (l *Ledger) Record(ctx context.Context, name, action, path, checksum string, sizeBytes int64) error {
	if l.db == nil {
		return nil
	}
	_, err := l.db.ExecContext(ctx, `
INSERT INTO fetch_events(name, action, path, checksum, size_bytes, created_at)
VALUES(?, ?, ?, ?, ?, ?);
`, name, action, path, checksum, sizeBytes, time.Now().Unix())
	return err
}

// Recent returns up to limit events, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]types.FetchEvent, error) {
	if l.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx, `
SELECT id, name, action, path, checksum, size_bytes, created_at
FROM fetch_events ORDER BY id DESC LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.FetchEvent
	for rows.Next() {
		var e types.FetchEvent
		if err := rows.Scan(&e.ID, &e.Name, &e.Action, &e.Path, &e.Checksum, &e.SizeBytes, &e.CreatedAtUnix); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountsByAction returns the number of recorded events per action.
func (l *Ledger) CountsByAction(ctx context.Context) (map[string]int64, error) {
	if l.db == nil {
		return nil, nil
	}
	rows, err := l.db.QueryContext(ctx, `
SELECT action, COUNT(*) FROM fetch_events GROUP BY action;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var action string
		var n int64
		if err := rows.Scan(&action, &n); err != nil {
			return nil, err
		}
		out[action] = n
	}
	return out, rows.Err()
}
