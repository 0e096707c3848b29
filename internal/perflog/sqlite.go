package perflog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kartikahlawat/Taks-manager/internal/monitor"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSink appends samples as rows of the samples table.
type SQLiteSink struct {
	path string
	db   *sql.DB
	ins  *sql.Stmt
}

// NewSQLiteSink creates a sink for the database at path. The database is
// opened and migrated on the first write.
func NewSQLiteSink(path string) *SQLiteSink {
	return &SQLiteSink{path: path}
}

// Path returns the database path.
func (s *SQLiteSink) Path() string {
	return s.path
}

func (s *SQLiteSink) open() error {
	if s.db != nil {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", s.path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("database not responding: %w", err)
	}
	if err := runMigration(db); err != nil {
		_ = db.Close()
		return err
	}

	ins, err := db.Prepare(`INSERT INTO samples (
		ts, cpu_percent, memory_used, memory_total,
		disk_read_rate, disk_write_rate, net_sent_rate, net_recv_rate,
		battery_percent, battery_charging
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}

	s.db, s.ins = db, ins
	return nil
}

func runMigration(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL,
		cpu_percent REAL,
		memory_used REAL,
		memory_total REAL,
		disk_read_rate REAL,
		disk_write_rate REAL,
		net_sent_rate REAL,
		net_recv_rate REAL,
		battery_percent REAL,
		battery_charging INTEGER
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to migrate samples table: %w", err)
	}
	return nil
}

// Write inserts one row. Unavailable values are stored as NULL.
func (s *SQLiteSink) Write(sample monitor.Sample) error {
	if err := s.open(); err != nil {
		return err
	}

	var batPct sql.NullFloat64
	var batCharging sql.NullBool
	if sample.Battery != nil {
		batPct = sql.NullFloat64{Float64: sample.Battery.Percent, Valid: true}
		batCharging = sql.NullBool{Bool: sample.Battery.Charging, Valid: true}
	}

	_, err := s.ins.Exec(
		sample.Time.Format(TimestampLayout),
		nullable(sample.CPUPercent),
		nullable(sample.MemoryUsed),
		nullable(sample.MemoryTotal),
		nullable(sample.DiskReadRate),
		nullable(sample.DiskWriteRate),
		nullable(sample.NetSentRate),
		nullable(sample.NetRecvRate),
		batPct,
		batCharging,
	)
	if err != nil {
		s.reset()
		return fmt.Errorf("failed to insert sample: %w", err)
	}
	return nil
}

// Flush is a no-op; every insert is committed on its own.
func (s *SQLiteSink) Flush() error {
	return nil
}

// Close checkpoints the WAL and closes the database.
func (s *SQLiteSink) Close() error {
	if s.db == nil {
		return nil
	}
	_, cpErr := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	_ = s.ins.Close()
	err := s.db.Close()
	s.db, s.ins = nil, nil
	if err != nil {
		return err
	}
	return cpErr
}

func (s *SQLiteSink) reset() {
	if s.db != nil {
		_ = s.ins.Close()
		_ = s.db.Close()
	}
	s.db, s.ins = nil, nil
}

func nullable(m monitor.Metric) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Value, Valid: m.Valid}
}
