package repository

import (
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func (r *Repository) CreateSeries(series *domain.RecurringSeries) error {
	query := `
		INSERT INTO recurring_series
			(group_id, staff_id, client_name, anchor_start, duration_minutes, recurrence_rule, timezone, is_active, end_type, end_date, end_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		series.GroupID, series.StaffID, series.ClientName, series.AnchorStart.UTC(),
		series.DurationMinutes, series.RecurrenceRule, series.Timezone,
		series.IsActive, series.EndType, series.EndDate, series.EndCount,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&series.ID, &series.CreatedAt, &series.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSeriesByID(id int64) (*domain.RecurringSeries, error) {
	query := `
		SELECT group_id, staff_id, client_name, anchor_start, duration_minutes, recurrence_rule, timezone, is_active, end_type, end_date, end_count, created_at, version
		FROM recurring_series WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	series := &domain.RecurringSeries{
		ID: id,
	}

	dst := []any{
		&series.GroupID, &series.StaffID, &series.ClientName, &series.AnchorStart,
		&series.DurationMinutes, &series.RecurrenceRule, &series.Timezone,
		&series.IsActive, &series.EndType, &series.EndDate, &series.EndCount,
		&series.CreatedAt, &series.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return series, nil
}

func (r *Repository) GetSeriesForStaff(staffID int64) ([]*domain.RecurringSeries, error) {
	query := `
		SELECT id, group_id, client_name, anchor_start, duration_minutes, recurrence_rule, timezone, is_active, end_type, end_date, end_count, created_at, version
		FROM recurring_series
		WHERE staff_id = $1
		ORDER BY id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seriesList := make([]*domain.RecurringSeries, 0)
	for rows.Next() {
		series := &domain.RecurringSeries{StaffID: staffID}
		dst := []any{
			&series.ID, &series.GroupID, &series.ClientName, &series.AnchorStart,
			&series.DurationMinutes, &series.RecurrenceRule, &series.Timezone,
			&series.IsActive, &series.EndType, &series.EndDate, &series.EndCount,
			&series.CreatedAt, &series.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		seriesList = append(seriesList, series)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seriesList, nil
}

func (r *Repository) UpdateSeries(series *domain.RecurringSeries) error {
	query := `
		UPDATE recurring_series
		SET
			client_name = $1,
			anchor_start = $2,
			duration_minutes = $3,
			recurrence_rule = $4,
			timezone = $5,
			is_active = $6,
			end_type = $7,
			end_date = $8,
			end_count = $9,
			version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		series.ClientName, series.AnchorStart.UTC(), series.DurationMinutes,
		series.RecurrenceRule, series.Timezone, series.IsActive,
		series.EndType, series.EndDate, series.EndCount,
		series.ID, series.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&series.CreatedAt, &series.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteSeries(id int64) error {
	// series_exceptions rows cascade with the series
	query := `
		DELETE FROM recurring_series WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSeriesExceptions(seriesIDs []int64) (map[int64][]*domain.SeriesException, error) {
	exceptions := make(map[int64][]*domain.SeriesException)
	if len(seriesIDs) == 0 {
		return exceptions, nil
	}

	query := `
		SELECT id, series_id, original_start, change_type, replacement_appointment_id, created_at
		FROM series_exceptions
		WHERE series_id = ANY($1)
		ORDER BY series_id, original_start
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, seriesIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		exc := &domain.SeriesException{}
		dst := []any{&exc.ID, &exc.SeriesID, &exc.OriginalStart, &exc.ChangeType, &exc.ReplacementAppointmentID, &exc.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		exceptions[exc.SeriesID] = append(exceptions[exc.SeriesID], exc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exceptions, nil
}

// CancelSeriesOccurrence records a cancelled exception for one occurrence
// and bumps the series version so memoized expansions stop matching. The
// exception keys off the original computed start.
func (r *Repository) CancelSeriesOccurrence(series *domain.RecurringSeries, originalStart time.Time) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO series_exceptions (series_id, original_start, change_type)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, insertQuery, series.ID, originalStart.UTC(), domain.ExceptionCancelled); err != nil {
		return err
	}

	bumpQuery := `
		UPDATE recurring_series SET version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, bumpQuery, series.ID, series.Version).Scan(&series.Version); err != nil {
		return err
	}

	return tx.Commit()
}

// RescheduleSeriesOccurrence materializes the replacement appointment row,
// records a rescheduled exception pointing at it and bumps the series
// version, all in one transaction.
func (r *Repository) RescheduleSeriesOccurrence(series *domain.RecurringSeries, originalStart time.Time, replacement *domain.Appointment) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	apptQuery := `
		INSERT INTO appointments (series_id, staff_id, client_name, start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`
	args := []any{series.ID, replacement.StaffID, replacement.ClientName, replacement.StartTime.UTC(), replacement.EndTime.UTC(), replacement.Status, replacement.Notes}
	if err := tx.QueryRowContext(ctx, apptQuery, args...).Scan(&replacement.ID, &replacement.CreatedAt, &replacement.Version); err != nil {
		return err
	}

	excQuery := `
		INSERT INTO series_exceptions (series_id, original_start, change_type, replacement_appointment_id)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, excQuery, series.ID, originalStart.UTC(), domain.ExceptionRescheduled, replacement.ID); err != nil {
		return err
	}

	bumpQuery := `
		UPDATE recurring_series SET version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, bumpQuery, series.ID, series.Version).Scan(&series.Version); err != nil {
		return err
	}

	return tx.Commit()
}
