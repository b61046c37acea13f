package repository

import (
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func (r *Repository) CreateAppointment(appt *domain.Appointment) error {
	query := `
		INSERT INTO appointments (series_id, staff_id, client_name, start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{appt.SeriesID, appt.StaffID, appt.ClientName, appt.StartTime.UTC(), appt.EndTime.UTC(), appt.Status, appt.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &appt.CreatedAt, &appt.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAppointmentByID(id int64) (*domain.Appointment, error) {
	query := `
		SELECT series_id, staff_id, client_name, start_time, end_time, status, notes, created_at, version
		FROM appointments WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	appt := &domain.Appointment{
		ID: id,
	}

	dst := []any{&appt.SeriesID, &appt.StaffID, &appt.ClientName, &appt.StartTime, &appt.EndTime, &appt.Status, &appt.Notes, &appt.CreatedAt, &appt.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return appt, nil
}

// GetAppointmentsInWindow returns a staff member's standalone appointment
// rows intersecting [start, end). Rows referenced as rescheduled
// replacements are included; the expander deduplicates them.
func (r *Repository) GetAppointmentsInWindow(staffID int64, start, end time.Time) ([]*domain.Appointment, error) {
	query := `
		SELECT id, series_id, client_name, start_time, end_time, status, notes, created_at, version
		FROM appointments
		WHERE staff_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time, id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt := &domain.Appointment{StaffID: staffID}
		dst := []any{&appt.ID, &appt.SeriesID, &appt.ClientName, &appt.StartTime, &appt.EndTime, &appt.Status, &appt.Notes, &appt.CreatedAt, &appt.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

// GetReplacementAppointments loads the appointment rows referenced by the
// rescheduled exceptions of the given series, keyed by id.
func (r *Repository) GetReplacementAppointments(seriesIDs []int64) (map[int64]*domain.Appointment, error) {
	replacements := make(map[int64]*domain.Appointment)
	if len(seriesIDs) == 0 {
		return replacements, nil
	}

	query := `
		SELECT a.id, a.series_id, a.staff_id, a.client_name, a.start_time, a.end_time, a.status, a.notes, a.created_at, a.version
		FROM appointments a
		JOIN series_exceptions e ON e.replacement_appointment_id = a.id
		WHERE e.series_id = ANY($1)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, seriesIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		appt := &domain.Appointment{}
		dst := []any{&appt.ID, &appt.SeriesID, &appt.StaffID, &appt.ClientName, &appt.StartTime, &appt.EndTime, &appt.Status, &appt.Notes, &appt.CreatedAt, &appt.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		replacements[appt.ID] = appt
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return replacements, nil
}

func (r *Repository) UpdateAppointment(appt *domain.Appointment) error {
	query := `
		UPDATE appointments
		SET
			client_name = $1,
			start_time = $2,
			end_time = $3,
			status = $4,
			notes = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{appt.ClientName, appt.StartTime.UTC(), appt.EndTime.UTC(), appt.Status, appt.Notes, appt.ID, appt.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appt.CreatedAt, &appt.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAppointment(id int64) error {
	query := `
		DELETE FROM appointments WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
