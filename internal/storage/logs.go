package storage

import "time"

// LogEntry represents a single log line for a session.
type LogEntry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// AppendLog adds a log entry for a session.
func (d *DB) AppendLog(sessionID, level, message string) error {
	_, err := d.db.Exec(
		`INSERT INTO session_logs (session_id, timestamp, level, message) VALUES (?, datetime('now'), ?, ?)`,
		sessionID, level, message,
	)
	return err
}

// GetLogs returns all log entries for a session, ordered by id.
func (d *DB) GetLogs(sessionID string) ([]LogEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, session_id, timestamp, level, message FROM session_logs WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []LogEntry
	for rows.Next() {
		var l LogEntry
		if err := rows.Scan(&l.ID, &l.SessionID, &l.Timestamp, &l.Level, &l.Message); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// GetLogsSince returns log entries after a given id (for polling).
func (d *DB) GetLogsSince(sessionID string, afterID int64) ([]LogEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, session_id, timestamp, level, message FROM session_logs WHERE session_id = ? AND id > ? ORDER BY id`,
		sessionID, afterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []LogEntry
	for rows.Next() {
		var l LogEntry
		if err := rows.Scan(&l.ID, &l.SessionID, &l.Timestamp, &l.Level, &l.Message); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
