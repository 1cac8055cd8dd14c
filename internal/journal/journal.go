// Package journal provides SQLite persistence for issued motor commands and
// battery readings.
package journal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/001_initial.sql
var migration001 string

// migrations is an ordered list of schema migrations.
var migrations = []struct {
	version int
	sql     string
}{
	{1, migration001},
}

// Journal records what a session sent to the cube.
type Journal struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the default journal location in the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("journal: home directory: %w", err)
	}
	return filepath.Join(home, ".circuitcube", "journal.db"), nil
}

// Open opens (or creates) the journal database at the given path and
// applies pending migrations.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: enable WAL mode: %w", err)
	}

	j := &Journal{db: db, path: path}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	current := 0

	var count int
	err := j.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("journal: check schema version table: %w", err)
	}

	if count > 0 {
		err = j.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current)
		if err != nil {
			return fmt.Errorf("journal: get schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if _, err := j.db.Exec(m.sql); err != nil {
			return fmt.Errorf("journal: apply migration %d: %w", m.version, err)
		}
	}
	return nil
}

// Session is one connect-to-disconnect span.
type Session struct {
	SessionID     string
	DeviceName    string
	DeviceAddress string
	StartedAt     time.Time
	EndedAt       *time.Time
}

// Command is one recorded motor command.
type Command struct {
	SessionID string
	SentAt    time.Time
	Motor     string
	Velocity  int
	Payload   string
}

// BatteryReading is one recorded voltage report.
type BatteryReading struct {
	SessionID string
	ReadAt    time.Time
	Voltage   float64
}

// StartSession creates a session row and returns its ID.
func (j *Journal) StartSession(deviceName, deviceAddress string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC().Format(time.RFC3339)

	_, err := j.db.Exec(`
		INSERT INTO sessions (session_id, device_name, device_address, started_at)
		VALUES (?, ?, ?, ?)
	`, id, deviceName, deviceAddress, startedAt)
	if err != nil {
		return "", fmt.Errorf("journal: start session: %w", err)
	}
	return id, nil
}

// EndSession marks a session as ended.
func (j *Journal) EndSession(sessionID string) error {
	endedAt := time.Now().UTC().Format(time.RFC3339)
	_, err := j.db.Exec(`
		UPDATE sessions SET ended_at = ? WHERE session_id = ?
	`, endedAt, sessionID)
	if err != nil {
		return fmt.Errorf("journal: end session: %w", err)
	}
	return nil
}

// RecordCommand appends a motor command to the session.
func (j *Journal) RecordCommand(sessionID, motor string, velocity int, payload string) error {
	sentAt := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := j.db.Exec(`
		INSERT INTO commands (session_id, sent_at, motor, velocity, payload)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, sentAt, motor, velocity, payload)
	if err != nil {
		return fmt.Errorf("journal: record command: %w", err)
	}
	return nil
}

// RecordBattery appends a battery reading to the session.
func (j *Journal) RecordBattery(sessionID string, voltage float64) error {
	readAt := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := j.db.Exec(`
		INSERT INTO battery_readings (session_id, read_at, voltage)
		VALUES (?, ?, ?)
	`, sessionID, readAt, voltage)
	if err != nil {
		return fmt.Errorf("journal: record battery: %w", err)
	}
	return nil
}

// ListSessions returns the most recent sessions, newest first.
func (j *Journal) ListSessions(limit int) ([]Session, error) {
	rows, err := j.db.Query(`
		SELECT session_id, COALESCE(device_name, ''), COALESCE(device_address, ''), started_at, ended_at
		FROM sessions
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var startedAt string
		var endedAt sql.NullString
		if err := rows.Scan(&s.SessionID, &s.DeviceName, &s.DeviceAddress, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("journal: scan session: %w", err)
		}
		s.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		if endedAt.Valid {
			t, err := time.Parse(time.RFC3339, endedAt.String)
			if err == nil {
				s.EndedAt = &t
			}
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListCommands returns the commands recorded for a session, oldest first.
func (j *Journal) ListCommands(sessionID string) ([]Command, error) {
	rows, err := j.db.Query(`
		SELECT session_id, sent_at, motor, velocity, payload
		FROM commands
		WHERE session_id = ?
		ORDER BY command_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("journal: list commands: %w", err)
	}
	defer rows.Close()

	var commands []Command
	for rows.Next() {
		var c Command
		var sentAt string
		if err := rows.Scan(&c.SessionID, &sentAt, &c.Motor, &c.Velocity, &c.Payload); err != nil {
			return nil, fmt.Errorf("journal: scan command: %w", err)
		}
		c.SentAt, _ = time.Parse(time.RFC3339Nano, sentAt)
		commands = append(commands, c)
	}
	return commands, rows.Err()
}

// ListBatteryReadings returns the battery readings for a session, oldest
// first.
func (j *Journal) ListBatteryReadings(sessionID string) ([]BatteryReading, error) {
	rows, err := j.db.Query(`
		SELECT session_id, read_at, voltage
		FROM battery_readings
		WHERE session_id = ?
		ORDER BY reading_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("journal: list battery readings: %w", err)
	}
	defer rows.Close()

	var readings []BatteryReading
	for rows.Next() {
		var r BatteryReading
		var readAt string
		if err := rows.Scan(&r.SessionID, &readAt, &r.Voltage); err != nil {
			return nil, fmt.Errorf("journal: scan battery reading: %w", err)
		}
		r.ReadAt, _ = time.Parse(time.RFC3339Nano, readAt)
		readings = append(readings, r)
	}
	return readings, rows.Err()
}
