package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"heater_dashboard/internal/logger"
	"heater_dashboard/internal/models"
	"heater_dashboard/internal/repository"
)

const noticeBuffer = 16

type EventLogService struct {
	eventRepo repository.EventRepo
	log       *logger.Logger
	notices   *fanout[models.DashboardEvent]
}

func NewEventLogService(eventRepo repository.EventRepo, log *logger.Logger) *EventLogService {
	return &EventLogService{
		eventRepo: eventRepo,
		log:       log.Component("eventlog"),
		notices:   newFanout[models.DashboardEvent](noticeBuffer),
	}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.DashboardEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}

// Record stores a notice and pushes it to live subscribers. Storage failures
// are logged; the notice is still broadcast.
func (s *EventLogService) Record(ctx context.Context, typ, header, description string, meta any) models.DashboardEvent {
	ev := models.DashboardEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Header:      header,
		Description: description,
		Metadata:    meta,
	}
	stored, err := s.eventRepo.Append(ctx, ev)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("notice_store_failed", "type", typ, "error", err)
		}
	} else {
		ev = stored
	}
	s.notices.publish(ev)
	return ev
}

// SubscribeNotices streams notices recorded after the call.
func (s *EventLogService) SubscribeNotices() (<-chan models.DashboardEvent, func()) {
	return s.notices.subscribe(models.DashboardEvent{}, false)
}

// Close ends every notice stream.
func (s *EventLogService) Close() { s.notices.closeAll() }
