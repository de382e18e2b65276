package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/models"
)

// schemaSQL is embedded so the service self-bootstraps its database schema.
//
//go:embed schema.sql
var schemaSQL string

// PostgresStore is the durable, append-only event store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if the database
// is unreachable.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema() error {
	_, err := p.pool.Exec(context.Background(), schemaSQL)
	return err
}

// Ping backs the readiness endpoint.
func (p *PostgresStore) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// InsertEvent appends an event. Duplicate detection is enforced by the
// idx_events_identity unique index, which matches the aggregation engine's
// dedup key and is compatible with camera retries and at-least-once delivery.
func (p *PostgresStore) InsertEvent(ctx context.Context, e models.Event) (int64, bool, error) {
	if err := e.Validate(); err != nil {
		return 0, false, err
	}

	// RETURNING id only fires when the row was inserted; duplicates return
	// no rows.
	var id int64
	err := p.pool.QueryRow(ctx, `
		INSERT INTO events(ts, worker_id, station_id, event_type, confidence, count)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (worker_id, station_id, event_type, ts, count) DO NOTHING
		RETURNING id
	`, e.Timestamp, e.WorkerID, e.StationID, string(e.Type), e.Confidence, e.Count).Scan(&id)

	if err == nil {
		return id, true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
}

// QueryEvents returns events matching the filter, in no guaranteed order.
func (p *PostgresStore) QueryEvents(ctx context.Context, f Filter) ([]models.Event, error) {
	q := strings.Builder{}
	q.WriteString(`SELECT id, ts, worker_id, station_id, event_type, confidence, count FROM events`)

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.WorkerID != "" {
		conds = append(conds, "worker_id = "+arg(f.WorkerID))
	}
	if f.StationID != "" {
		conds = append(conds, "station_id = "+arg(f.StationID))
	}
	if f.Since != nil {
		conds = append(conds, "ts >= "+arg(*f.Since))
	}
	if f.Until != nil {
		conds = append(conds, "ts < "+arg(*f.Until))
	}
	if len(conds) > 0 {
		q.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	rows, err := p.pool.Query(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		var (
			e    models.Event
			kind string
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.WorkerID, &e.StationID, &kind, &e.Confidence, &e.Count); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
		e.Type = models.EventType(kind)
		e.Timestamp = e.Timestamp.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return out, nil
}

// ListWorkers returns the worker registry.
func (p *PostgresStore) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	rows, err := p.pool.Query(ctx, `SELECT worker_id, name FROM workers ORDER BY worker_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []models.Worker
	for rows.Next() {
		var w models.Worker
		if err := rows.Scan(&w.WorkerID, &w.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ListWorkstations returns the station registry.
func (p *PostgresStore) ListWorkstations(ctx context.Context) ([]models.Workstation, error) {
	rows, err := p.pool.Query(ctx, `SELECT station_id, name FROM workstations ORDER BY station_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []models.Workstation
	for rows.Next() {
		var s models.Workstation
		if err := rows.Scan(&s.StationID, &s.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ResetAndSeed clears all tables and inserts the fixture in one transaction.
func (p *PostgresStore) ResetAndSeed(ctx context.Context, fx Fixture) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{
		`DELETE FROM events`,
		`DELETE FROM workers`,
		`DELETE FROM workstations`,
	} {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
	}

	for _, w := range fx.Workers {
		if _, err := tx.Exec(ctx,
			`INSERT INTO workers(worker_id, name) VALUES ($1,$2)`, w.ID, w.Name); err != nil {
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
	}
	for _, s := range fx.Workstations {
		if _, err := tx.Exec(ctx,
			`INSERT INTO workstations(station_id, name) VALUES ($1,$2)`, s.ID, s.Name); err != nil {
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
	}
	for _, fe := range fx.Events {
		e, err := fe.Event()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO events(ts, worker_id, station_id, event_type, confidence, count)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (worker_id, station_id, event_type, ts, count) DO NOTHING
		`, e.Timestamp, e.WorkerID, e.StationID, string(e.Type), e.Confidence, e.Count); err != nil {
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}
