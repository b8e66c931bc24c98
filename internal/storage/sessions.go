package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/autodebugdev/autodebug/internal/core"
)

// SaveSession upserts a session. The full record is stored as JSON in
// the data column; source snapshots are excluded by the session's own
// marshalling rules.
func (d *DB) SaveSession(session *core.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = d.db.Exec(
		`INSERT INTO sessions (id, target, phase, data, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			phase = excluded.phase,
			data = excluded.data,
			completed_at = excluded.completed_at`,
		session.ID, session.Target, string(session.Phase), string(data),
		session.CreatedAt, session.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

// GetSession retrieves a session by its ID. Returns nil if not found.
func (d *DB) GetSession(id string) (*core.Session, error) {
	var data string
	err := d.db.QueryRow("SELECT data FROM sessions WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var session core.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &session, nil
}

// ListSessions returns all stored sessions ordered by creation time descending.
func (d *DB) ListSessions() ([]core.Session, error) {
	rows, err := d.db.Query("SELECT data FROM sessions ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []core.Session
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		var session core.Session
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// ListSessionsForTarget returns stored sessions for one target path,
// newest first.
func (d *DB) ListSessionsForTarget(target string) ([]core.Session, error) {
	rows, err := d.db.Query(
		"SELECT data FROM sessions WHERE target = ? ORDER BY created_at DESC", target)
	if err != nil {
		return nil, fmt.Errorf("list sessions for %s: %w", target, err)
	}
	defer rows.Close()

	var sessions []core.Session
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		var session core.Session
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
