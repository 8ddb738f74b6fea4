package repository

import (
	"context"
	"database/sql"
	"time"

	"heater_dashboard/internal/models"
)

// EventRepo stores operator notices.
type EventRepo interface {
	Append(ctx context.Context, e models.DashboardEvent) (models.DashboardEvent, error)
	List(ctx context.Context, from, to time.Time, typ string) ([]models.DashboardEvent, error)
}

type Repository struct {
	EventRepo EventRepo
}

// NewRepository wires the stores; noticeLimit caps the notice log.
func NewRepository(db *sql.DB, noticeLimit int) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db, noticeLimit),
	}
}
