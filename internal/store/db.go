package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"spacex-dashboard/internal/binding"
	"spacex-dashboard/internal/model"
)

// Load statuses
const (
	StatusLoaded = "loaded"
	StatusFailed = "failed"
)

// Store is the append-only audit log of dataset loads and chart callbacks.
type Store struct {
	db  *sql.DB
	log *zap.Logger

	mu     sync.RWMutex
	loadID string
}

// Open connects to the sqlite file at dbPath and creates missing tables
func Open(dbPath string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	// sqlite allows one writer; serialize through a single connection
	db.SetMaxOpenConns(1)

	loadTable := `
	CREATE TABLE IF NOT EXISTS dataset_loads (
		id TEXT PRIMARY KEY,
		source TEXT,
		status TEXT,
		record_count INTEGER,
		min_payload REAL,
		max_payload REAL,
		created_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS load_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		load_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`
	eventTable := `
	CREATE TABLE IF NOT EXISTS callback_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		load_id TEXT,
		output TEXT,
		trigger_input TEXT,
		site TEXT,
		payload_low REAL,
		payload_high REAL,
		items INTEGER,
		duration_us INTEGER,
		error_message TEXT,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{loadTable, errorTable, eventTable} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create tables: %w", err)
		}
	}

	return &Store{db: db, log: log}, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadID returns the id of the most recent successful load
func (s *Store) LoadID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadID
}

// SaveLoad records a successful dataset load and returns its id
func (s *Store) SaveLoad(ctx context.Context, ds *model.Dataset) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dataset_loads (id, source, status, record_count, min_payload, max_payload, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, ds.Source(), StatusLoaded, ds.Len(), ds.MinPayload(), ds.MaxPayload(), now)
	if err != nil {
		return "", fmt.Errorf("save load: %w", err)
	}

	s.mu.Lock()
	s.loadID = id
	s.mu.Unlock()
	return id, nil
}

// SaveLoadError records a failed dataset load
func (s *Store) SaveLoadError(ctx context.Context, source string, loadErr error) (string, error) {
	if loadErr == nil {
		return "", nil
	}
	id := uuid.New().String()
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO dataset_loads (id, source, status, record_count, min_payload, max_payload, created_at) VALUES (?, ?, ?, 0, 0, 0, ?)`,
		id, source, StatusFailed, now); err != nil {
		return "", fmt.Errorf("save failed load: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO load_errors (load_id, error_message, created_at) VALUES (?, ?, ?)`,
		id, loadErr.Error(), now); err != nil {
		return "", fmt.Errorf("save load error: %w", err)
	}
	return id, tx.Commit()
}

// Load is one row of dataset_loads
type Load struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	RecordCount int       `json:"record_count"`
	MinPayload  float64   `json:"min_payload"`
	MaxPayload  float64   `json:"max_payload"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListLoads returns every recorded load, newest first
func (s *Store) ListLoads(ctx context.Context) ([]Load, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.source, l.status, l.record_count, l.min_payload, l.max_payload,
		       COALESCE(e.error_message, ''), l.created_at
		FROM dataset_loads l
		LEFT JOIN load_errors e ON e.load_id = l.id
		ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := []Load{}
	for rows.Next() {
		var l Load
		if err := rows.Scan(&l.ID, &l.Source, &l.Status, &l.RecordCount, &l.MinPayload, &l.MaxPayload, &l.Error, &l.CreatedAt); err != nil {
			return nil, err
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

// CallbackEvent is one row of callback_events
type CallbackEvent struct {
	ID          int64     `json:"id"`
	LoadID      string    `json:"load_id"`
	Output      string    `json:"output"`
	Trigger     string    `json:"trigger"`
	Site        string    `json:"site"`
	PayloadLow  float64   `json:"payload_low"`
	PayloadHigh float64   `json:"payload_high"`
	Items       int       `json:"items"`
	DurationUS  int64     `json:"duration_us"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SaveCallbackEvent appends one callback event
func (s *Store) SaveCallbackEvent(ctx context.Context, ev binding.Event) error {
	var msg string
	if ev.Err != nil {
		msg = ev.Err.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO callback_events (load_id, output, trigger_input, site, payload_low, payload_high, items, duration_us, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.LoadID(), ev.Output, ev.Trigger, ev.State.Site, ev.State.Payload.Low, ev.State.Payload.High,
		ev.Items, ev.Duration.Microseconds(), msg, time.Now().UTC())
	return err
}

// CallbackDone implements binding.Observer. Audit failures are logged, never
// returned to the callback.
func (s *Store) CallbackDone(ctx context.Context, ev binding.Event) {
	if err := s.SaveCallbackEvent(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warn("failed to save callback event", zap.String("output", ev.Output), zap.Error(err))
	}
}

// ListCallbackEvents returns up to limit events, newest first
func (s *Store) ListCallbackEvents(ctx context.Context, limit int) ([]CallbackEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, load_id, output, trigger_input, site, payload_low, payload_high, items, duration_us, error_message, created_at
		FROM callback_events
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []CallbackEvent{}
	for rows.Next() {
		var ev CallbackEvent
		if err := rows.Scan(&ev.ID, &ev.LoadID, &ev.Output, &ev.Trigger, &ev.Site, &ev.PayloadLow, &ev.PayloadHigh,
			&ev.Items, &ev.DurationUS, &ev.Error, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
