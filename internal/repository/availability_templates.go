package repository

import (
	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func (r *Repository) GetAvailabilityTemplate(staffID int64) (*domain.AvailabilityTemplate, error) {
	query := `
		SELECT
			t.updated_at,
			t.version,
			w.id,
			w.day_of_week,
			w.start_time,
			w.end_time,
			w.is_active
		FROM availability_templates t
		LEFT JOIN availability_windows w ON w.staff_id = t.staff_id
		WHERE t.staff_id = $1
		ORDER BY w.day_of_week, w.start_time
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	template := &domain.AvailabilityTemplate{
		StaffID: staffID,
		Windows: make([]domain.AvailabilityWindow, 0),
	}
	found := false

	for rows.Next() {
		found = true
		var row struct {
			WindowID  *int64
			DayOfWeek *int
			StartTime *string
			EndTime   *string
			IsActive  *bool
		}

		dst := []any{&template.UpdatedAt, &template.Version, &row.WindowID, &row.DayOfWeek, &row.StartTime, &row.EndTime, &row.IsActive}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		// LEFT JOIN leaves the window columns NULL when the template has
		// no windows yet.
		if row.WindowID == nil {
			continue
		}

		template.Windows = append(template.Windows, domain.AvailabilityWindow{
			ID:        *row.WindowID,
			DayOfWeek: *row.DayOfWeek,
			StartTime: *row.StartTime,
			EndTime:   *row.EndTime,
			IsActive:  *row.IsActive,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return template, nil
}

// ReplaceAvailabilityTemplate swaps a staff member's weekly template
// wholesale: callers validate the windows first, then the old rows go and
// the new set comes in atomically.
func (r *Repository) ReplaceAvailabilityTemplate(template *domain.AvailabilityTemplate) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsertQuery := `
		INSERT INTO availability_templates (staff_id)
		VALUES ($1)
		ON CONFLICT (staff_id) DO UPDATE SET updated_at = now(), version = availability_templates.version + 1
		RETURNING updated_at, version
	`
	if err := tx.QueryRowContext(ctx, upsertQuery, template.StaffID).Scan(&template.UpdatedAt, &template.Version); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM availability_windows WHERE staff_id = $1`, template.StaffID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO availability_windows (staff_id, day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range template.Windows {
		w := &template.Windows[i]
		if err := tx.QueryRowContext(ctx, insertQuery, template.StaffID, w.DayOfWeek, w.StartTime, w.EndTime, w.IsActive).Scan(&w.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
