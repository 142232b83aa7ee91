package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/keydeck/internal/migrations"
	"github.com/studiowebux/keydeck/internal/types"
)

// timestampLayout is how journal timestamps are stored, in local time
const timestampLayout = "2006-01-02 15:04:05"

// Manager persists the activity journal in SQLite
type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	// Run database migrations (creates the schema first)
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record appends one entry. A zero timestamp is replaced with now.
func (m *Manager) Record(entry types.JournalEntry) error {
	if strings.TrimSpace(entry.Kind) == "" {
		return fmt.Errorf("journal entry needs a kind")
	}
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := m.db.Exec(`
		INSERT INTO journal (timestamp, profile_name, kind, detail, error)
		VALUES (?, ?, ?, ?, ?)
	`,
		ts.Local().Format(timestampLayout),
		entry.Profile,
		entry.Kind,
		nullable(entry.Detail),
		nullable(entry.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

// Load returns entries newest first. An empty profile lists every profile;
// a limit <= 0 returns everything.
func (m *Manager) Load(profileName string, limit int) ([]types.JournalEntry, error) {
	query := `
		SELECT id, timestamp, profile_name, kind, detail, error
		FROM journal
	`
	var args []any
	if profileName != "" {
		query += " WHERE profile_name = ?"
		args = append(args, profileName)
	}
	query += " ORDER BY timestamp DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

func (m *Manager) scanEntries(rows *sql.Rows) ([]types.JournalEntry, error) {
	var entries []types.JournalEntry

	for rows.Next() {
		var entry types.JournalEntry
		var timestamp string
		var detail, errMsg sql.NullString

		if err := rows.Scan(&entry.ID, &timestamp, &entry.Profile, &entry.Kind, &detail, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}

		// go-sqlite3 may hand DATETIME columns back in RFC3339 form
		t, err := time.ParseInLocation(timestampLayout, timestamp, time.Local)
		if err != nil {
			if t, err = time.Parse(time.RFC3339, timestamp); err != nil {
				return nil, fmt.Errorf("invalid journal timestamp %q: %w", timestamp, err)
			}
		}
		entry.Timestamp = t
		entry.Detail = detail.String
		entry.Error = errMsg.String

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Clear deletes the entries of one profile, or all entries when
// profileName is empty. It returns the number of deleted rows.
func (m *Manager) Clear(profileName string) (int64, error) {
	var res sql.Result
	var err error
	if profileName == "" {
		res, err = m.db.Exec("DELETE FROM journal")
	} else {
		res, err = m.db.Exec("DELETE FROM journal WHERE profile_name = ?", profileName)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to clear journal: %w", err)
	}
	return res.RowsAffected()
}

func (m *Manager) Delete(id int64) error {
	_, err := m.db.Exec("DELETE FROM journal WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM journal").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
