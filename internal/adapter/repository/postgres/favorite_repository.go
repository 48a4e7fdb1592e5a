package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// FavoriteRepository keeps each device's favorite destinations in the
// favorite_destinations table, ordered by the position they were added in.
type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

const favoriteSchema = `
CREATE TABLE IF NOT EXISTS favorite_destinations (
	device_id      TEXT   NOT NULL,
	destination_id BIGINT NOT NULL,
	position       INT    NOT NULL,
	PRIMARY KEY (device_id, destination_id)
)`

// EnsureSchema creates the favorites table when it does not exist yet.
func (r *FavoriteRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, favoriteSchema); err != nil {
		return fmt.Errorf("failed to create favorites table: %w", err)
	}

	return nil
}

func (r *FavoriteRepository) LoadFavorites(ctx context.Context, deviceID string) ([]int64, error) {
	query := `
	SELECT destination_id FROM favorite_destinations
	WHERE device_id = $1
	ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}

	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}

	return ids, nil
}

// SaveFavorites replaces the device's whole favorite set in one transaction.
func (r *FavoriteRepository) SaveFavorites(ctx context.Context, deviceID string, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM favorite_destinations WHERE device_id = $1`, deviceID)
	if err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	queryItem := `
	INSERT INTO favorite_destinations (device_id, destination_id, position)
	VALUES ($1, $2, $3)
	`

	stmt, err := tx.PrepareContext(ctx, queryItem)
	if err != nil {
		return fmt.Errorf("failed to prepare favorite statement: %w", err)
	}

	defer stmt.Close()

	for i, id := range ids {
		_, err := stmt.ExecContext(ctx, deviceID, id, i)
		if err != nil {
			return fmt.Errorf("failed to insert favorite destination %d: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
