package repository

import (
	"database/sql"
	"errors"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

// GetWorkingHours returns the viewer's persisted grid preference, or the
// defaults when the viewer has never set one.
func (r *Repository) GetWorkingHours(userID int64) (*domain.WorkingHoursPreference, error) {
	query := `
		SELECT start_hour, end_hour, version
		FROM working_hours_preferences WHERE user_id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	pref := &domain.WorkingHoursPreference{
		UserID: userID,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(&pref.StartHour, &pref.EndHour, &pref.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultWorkingHours(userID), nil
		}
		return nil, err
	}

	return pref, nil
}

func (r *Repository) UpsertWorkingHours(pref *domain.WorkingHoursPreference) error {
	query := `
		INSERT INTO working_hours_preferences (user_id, start_hour, end_hour)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET start_hour = $2, end_hour = $3, version = working_hours_preferences.version + 1
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, pref.UserID, pref.StartHour, pref.EndHour).Scan(&pref.Version); err != nil {
		return err
	}

	return nil
}
