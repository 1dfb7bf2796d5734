// Package journal records routed events and delivery outcomes in SQLite.
// It is an append-only observability log: the routing state machine itself is
// memory-resident and is not persisted here.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Delivery status values.
const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trace_id TEXT NOT NULL,
	channel TEXT NOT NULL,
	sender_id INTEGER NOT NULL,
	rule TEXT NOT NULL,
	detail TEXT DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_events_trace ON events(trace_id);
CREATE TABLE IF NOT EXISTS deliveries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trace_id TEXT NOT NULL,
	op TEXT NOT NULL,
	chat_id INTEGER NOT NULL,
	status TEXT NOT NULL,
	error_text TEXT DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_deliveries_trace ON deliveries(trace_id);
`

// Journal is the SQLite-backed event log.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at dbPath.
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// RecordEvent appends one routed-event row.
func (j *Journal) RecordEvent(traceID, channel string, senderID int64, rule, detail string) error {
	_, err := j.db.Exec(
		`INSERT INTO events (trace_id, channel, sender_id, rule, detail) VALUES (?, ?, ?, ?, ?)`,
		traceID, channel, senderID, rule, detail,
	)
	return err
}

// RecordDelivery appends one outbound delivery outcome.
func (j *Journal) RecordDelivery(traceID, op string, chatID int64, status, errText string) error {
	_, err := j.db.Exec(
		`INSERT INTO deliveries (trace_id, op, chat_id, status, error_text) VALUES (?, ?, ?, ?, ?)`,
		traceID, op, chatID, status, errText,
	)
	return err
}

// Event is one routed-event row.
type Event struct {
	TraceID   string
	Channel   string
	SenderID  int64
	Rule      string
	Detail    string
	CreatedAt time.Time
}

// RecentEvents returns up to limit events, newest first.
func (j *Journal) RecentEvents(limit int) ([]Event, error) {
	rows, err := j.db.Query(
		`SELECT trace_id, channel, sender_id, rule, detail, created_at
		 FROM events ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.TraceID, &e.Channel, &e.SenderID, &e.Rule, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Delivery is one delivery outcome row.
type Delivery struct {
	TraceID   string
	Op        string
	ChatID    int64
	Status    string
	ErrorText string
	CreatedAt time.Time
}

// RecentDeliveries returns up to limit delivery rows, newest first.
func (j *Journal) RecentDeliveries(limit int) ([]Delivery, error) {
	rows, err := j.db.Query(
		`SELECT trace_id, op, chat_id, status, error_text, created_at
		 FROM deliveries ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []Delivery
	for rows.Next() {
		var d Delivery
		if err := rows.Scan(&d.TraceID, &d.Op, &d.ChatID, &d.Status, &d.ErrorText, &d.CreatedAt); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}
