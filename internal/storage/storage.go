package storage

import (
	"database/sql"
	"os"
	"os/user"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps a local history of fetched dashboard snapshots so the
// history command works without the API and day-over-day deltas can be
// computed.
type Store struct {
	db *sql.DB
}

// Snapshot is the state of the account as seen by one fetch, keyed by
// UTC calendar day. Repeated fetches on the same day overwrite.
type Snapshot struct {
	Date         string // 2006-01-02
	Completed    int
	Started      int
	TimeTyping   float64
	XP           int64
	StreakLength int
	LastWPM      float64
	LastAccuracy float64
}

func getDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback: get home dir from user.Current()
		if u, userErr := user.Current(); userErr == nil {
			home = u.HomeDir
		} else {
			return "", err
		}
	}
	dataDir := filepath.Join(home, ".local", "share", "monkeystats")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

func New() (*Store, error) {
	dataDir, err := getDataDir()
	if err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "monkeystats.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		date TEXT PRIMARY KEY,
		completed INTEGER DEFAULT 0,
		started INTEGER DEFAULT 0,
		time_typing REAL DEFAULT 0,
		xp INTEGER DEFAULT 0,
		streak_length INTEGER DEFAULT 0,
		last_wpm REAL DEFAULT 0,
		last_accuracy REAL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// RecordSnapshot upserts the snapshot for its calendar day.
func (s *Store) RecordSnapshot(snap Snapshot) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (date, completed, started, time_typing, xp, streak_length, last_wpm, last_accuracy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			completed = excluded.completed,
			started = excluded.started,
			time_typing = excluded.time_typing,
			xp = excluded.xp,
			streak_length = excluded.streak_length,
			last_wpm = excluded.last_wpm,
			last_accuracy = excluded.last_accuracy,
			updated_at = CURRENT_TIMESTAMP
	`, snap.Date, snap.Completed, snap.Started, snap.TimeTyping, snap.XP,
		snap.StreakLength, snap.LastWPM, snap.LastAccuracy)
	return err
}

// GetSnapshot returns the snapshot recorded for a day, or nil if none
// exists.
func (s *Store) GetSnapshot(date string) (*Snapshot, error) {
	snap := Snapshot{Date: date}

	err := s.db.QueryRow(`
		SELECT completed, started, time_typing, xp, streak_length, last_wpm, last_accuracy
		FROM snapshots WHERE date = ?
	`, date).Scan(&snap.Completed, &snap.Started, &snap.TimeTyping, &snap.XP,
		&snap.StreakLength, &snap.LastWPM, &snap.LastAccuracy)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

// GetRecent returns the snapshots recorded within the last N days,
// oldest first. Days without a snapshot are absent.
func (s *Store) GetRecent(days int, now time.Time) ([]Snapshot, error) {
	cutoff := now.UTC().AddDate(0, 0, -days).Format("2006-01-02")

	rows, err := s.db.Query(`
		SELECT date, completed, started, time_typing, xp, streak_length, last_wpm, last_accuracy
		FROM snapshots WHERE date > ? ORDER BY date ASC
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.Date, &snap.Completed, &snap.Started, &snap.TimeTyping,
			&snap.XP, &snap.StreakLength, &snap.LastWPM, &snap.LastAccuracy); err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
