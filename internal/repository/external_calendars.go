package repository

import (
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func (r *Repository) CreateExternalCalendar(cal *domain.ExternalCalendar) error {
	query := `
		INSERT INTO external_calendars (staff_id, label, feed_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, cal.StaffID, cal.Label, cal.FeedURL).Scan(&cal.ID, &cal.CreatedAt, &cal.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetExternalCalendarByID(id int64) (*domain.ExternalCalendar, error) {
	query := `
		SELECT staff_id, label, feed_url, last_synced_at, created_at, version
		FROM external_calendars WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	cal := &domain.ExternalCalendar{
		ID: id,
	}

	dst := []any{&cal.StaffID, &cal.Label, &cal.FeedURL, &cal.LastSyncedAt, &cal.CreatedAt, &cal.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return cal, nil
}

func (r *Repository) GetAllExternalCalendars() ([]*domain.ExternalCalendar, error) {
	query := `
		SELECT id, staff_id, label, feed_url, last_synced_at, created_at, version
		FROM external_calendars
		ORDER BY id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	calendars := make([]*domain.ExternalCalendar, 0)
	for rows.Next() {
		cal := &domain.ExternalCalendar{}
		dst := []any{&cal.ID, &cal.StaffID, &cal.Label, &cal.FeedURL, &cal.LastSyncedAt, &cal.CreatedAt, &cal.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		calendars = append(calendars, cal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return calendars, nil
}

func (r *Repository) DeleteExternalCalendar(id int64) error {
	// synced events cascade with the calendar
	query := `
		DELETE FROM external_calendars WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// ReplaceExternalEvents swaps a calendar's synced events wholesale and
// stamps the sync time. The feed is the source of truth, so stale rows
// never survive a sync.
func (r *Repository) ReplaceExternalEvents(cal *domain.ExternalCalendar, events []*domain.ExternalEvent) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM external_events WHERE calendar_id = $1`, cal.ID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO external_events (calendar_id, event_uid, sync_id, summary, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for _, ev := range events {
		if err := tx.QueryRowContext(ctx, insertQuery, cal.ID, ev.EventUID, ev.SyncID, ev.Summary, ev.StartTime.UTC(), ev.EndTime.UTC()).Scan(&ev.ID); err != nil {
			return err
		}
	}

	stampQuery := `
		UPDATE external_calendars SET last_synced_at = now(), version = version + 1
		WHERE id = $1
		RETURNING last_synced_at, version
	`
	if err := tx.QueryRowContext(ctx, stampQuery, cal.ID).Scan(&cal.LastSyncedAt, &cal.Version); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetExternalEventsInWindow(staffID int64, start, end time.Time) ([]*domain.ExternalEvent, error) {
	query := `
		SELECT e.id, e.calendar_id, e.event_uid, e.sync_id, e.summary, e.start_time, e.end_time
		FROM external_events e
		JOIN external_calendars c ON c.id = e.calendar_id
		WHERE c.staff_id = $1 AND e.start_time < $3 AND e.end_time > $2
		ORDER BY e.start_time, e.id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.ExternalEvent, 0)
	for rows.Next() {
		ev := &domain.ExternalEvent{}
		dst := []any{&ev.ID, &ev.CalendarID, &ev.EventUID, &ev.SyncID, &ev.Summary, &ev.StartTime, &ev.EndTime}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
