package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"heater_dashboard/internal/models"

	"github.com/google/uuid"
)

const sqliteTimestamp = "2006-01-02 15:04:05.000"

// DefaultNoticeLimit is the number of notices kept when no limit is configured.
const DefaultNoticeLimit = 1000

const insertEvent = `
	INSERT INTO dashboard_events (id, occurred_at, type, header, message, meta)
	VALUES (?, ?, ?, ?, ?, ?)
`

// pruneEvents keeps the newest notices; rowid breaks ties within a millisecond.
const pruneEvents = `
	DELETE FROM dashboard_events WHERE rowid NOT IN (
		SELECT rowid FROM dashboard_events ORDER BY occurred_at DESC, rowid DESC LIMIT ?
	)
`

type EventSQLite struct {
	db    *sql.DB
	limit int
}

// NewEventSQLite returns a store that keeps at most limit notices; limit <= 0
// keeps everything.
func NewEventSQLite(db *sql.DB, limit int) *EventSQLite {
	return &EventSQLite{db: db, limit: limit}
}

// Append inserts a notice, filling EventID and OccurredAt when empty, and
// returns the stored event. With a limit set, the insert and the prune of
// older notices commit together.
func (r *EventSQLite) Append(ctx context.Context, e models.DashboardEvent) (models.DashboardEvent, error) {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}
	e.Type = strings.ToUpper(strings.TrimSpace(e.Type))

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}
	args := []any{e.EventID, e.OccurredAt.Format(sqliteTimestamp), e.Type, e.Header, e.Description, metaPtr}

	if r.limit <= 0 {
		if _, err := r.db.ExecContext(ctx, insertEvent, args...); err != nil {
			return models.DashboardEvent{}, fmt.Errorf("insert event: %w", err)
		}
		return e, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.DashboardEvent{}, fmt.Errorf("begin event transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, insertEvent, args...); err != nil {
		return models.DashboardEvent{}, fmt.Errorf("insert event: %w", err)
	}
	if _, err := tx.ExecContext(ctx, pruneEvents, r.limit); err != nil {
		return models.DashboardEvent{}, fmt.Errorf("prune events: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.DashboardEvent{}, fmt.Errorf("commit event: %w", err)
	}
	return e, nil
}

// List returns notices filtered by [from, to] (inclusive) and/or type, oldest first.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.DashboardEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimestamp))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimestamp))
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, occurred_at, type, header, message, meta FROM dashboard_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := make([]models.DashboardEvent, 0, 64)
	for rows.Next() {
		var ev models.DashboardEvent
		var metaStr sql.NullString
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Header, &ev.Description, &metaStr); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}
