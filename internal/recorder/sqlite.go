package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while the bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT,
			bar_count     INTEGER,
			bar_timestamp TEXT,
			close_price   REAL,
			vpd           REAL,
			rsi           REAL,
			z_score       REAL,
			score         INTEGER,
			action        TEXT,
			reason        TEXT,
			notified      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,

		`CREATE TABLE IF NOT EXISTS skips (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT,
			bar_count INTEGER,
			reason    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_skips_ts ON skips(timestamp)`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT,
			kind      TEXT,
			title     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_ts ON notifications(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignal(rec *SignalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := rec.Result
	var vpd, rsi, z float64
	if res.Factors != nil {
		vpd, rsi, z = res.Factors.VPD, res.Factors.RSI, res.Factors.ZScore
	}
	notified := 0
	if rec.Notified {
		notified = 1
	}

	_, err := r.db.Exec(`INSERT INTO signals
		(timestamp, symbol, bar_count, bar_timestamp, close_price, vpd, rsi, z_score, score, action, reason, notified)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.BarCount, res.Timestamp, res.ClosePrice,
		vpd, rsi, z, res.Score, string(res.Action), res.Reason, notified,
	)
	return err
}

func (r *SQLiteRecorder) RecordSkip(evt *SkipEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO skips (timestamp, symbol, bar_count, reason) VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.BarCount, evt.Reason,
	)
	return err
}

func (r *SQLiteRecorder) RecordNotify(evt *NotifyEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO notifications (timestamp, symbol, kind, title) VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.Kind, evt.Title,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
