package repository

import (
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func (r *Repository) CreateManualBlock(block *domain.ManualBlock) error {
	query := `
		INSERT INTO manual_blocks (staff_id, start_time, end_time, label)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{block.StaffID, block.StartTime.UTC(), block.EndTime.UTC(), block.Label}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&block.ID, &block.CreatedAt, &block.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetManualBlockByID(id int64) (*domain.ManualBlock, error) {
	query := `
		SELECT staff_id, start_time, end_time, label, created_at, version
		FROM manual_blocks WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	block := &domain.ManualBlock{
		ID: id,
	}

	dst := []any{&block.StaffID, &block.StartTime, &block.EndTime, &block.Label, &block.CreatedAt, &block.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return block, nil
}

func (r *Repository) GetManualBlocksInWindow(staffID int64, start, end time.Time) ([]*domain.ManualBlock, error) {
	query := `
		SELECT id, start_time, end_time, label, created_at, version
		FROM manual_blocks
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

	blocks := make([]*domain.ManualBlock, 0)
	for rows.Next() {
		block := &domain.ManualBlock{StaffID: staffID}
		dst := []any{&block.ID, &block.StartTime, &block.EndTime, &block.Label, &block.CreatedAt, &block.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *Repository) UpdateManualBlock(block *domain.ManualBlock) error {
	query := `
		UPDATE manual_blocks
		SET
			start_time = $1,
			end_time = $2,
			label = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{block.StartTime.UTC(), block.EndTime.UTC(), block.Label, block.ID, block.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&block.CreatedAt, &block.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteManualBlock(id int64) error {
	query := `
		DELETE FROM manual_blocks WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
