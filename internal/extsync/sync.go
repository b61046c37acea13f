package extsync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/config"
	"github.com/arborview-health/practice-manager/backend/internal/domain"
	"github.com/arborview-health/practice-manager/backend/internal/repository"
)

// lookBehind keeps recently finished events around so views that span the
// current day still show them.
const lookBehind = 7 * 24 * time.Hour

type Syncer struct {
	cfg        *config.Config
	repository *repository.Repository
	fetcher    *Fetcher
}

func NewSyncer(cfg *config.Config, repo *repository.Repository) *Syncer {
	return &Syncer{
		cfg:        cfg,
		repository: repo,
		fetcher:    NewFetcher(time.Duration(cfg.Sync.FetchTimeout) * time.Second),
	}
}

// SyncCalendar fetches one feed and replaces the calendar's stored events
// with the occurrences falling inside the sync window.
func (s *Syncer) SyncCalendar(ctx context.Context, cal *domain.ExternalCalendar) error {
	body, err := s.fetcher.Fetch(ctx, cal.FeedURL)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}

	feedEvents, err := ParseFeed(body)
	if err != nil {
		return fmt.Errorf("parse feed: %w", err)
	}

	now := time.Now().UTC()
	windowStart := now.Add(-lookBehind)
	windowEnd := now.AddDate(0, 0, s.cfg.Sync.WindowDays)

	rows := ExpandEvents(cal.ID, feedEvents, windowStart, windowEnd)
	if err := s.repository.ReplaceExternalEvents(cal, rows); err != nil {
		return fmt.Errorf("store events: %w", err)
	}

	slog.Info("synced external calendar", "calendar_id", cal.ID, "label", cal.Label, "events", len(rows))
	return nil
}

// SyncAll refreshes every registered feed. A failing feed is logged and
// skipped so one dead URL does not block the rest.
func (s *Syncer) SyncAll(ctx context.Context) {
	calendars, err := s.repository.GetAllExternalCalendars()
	if err != nil {
		slog.Error("failed to list external calendars", "error", err)
		return
	}

	for _, cal := range calendars {
		if err := s.SyncCalendar(ctx, cal); err != nil {
			slog.Error("failed to sync external calendar", "calendar_id", cal.ID, "label", cal.Label, "error", err)
		}
	}
}
