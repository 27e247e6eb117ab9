package db

import (
	"buster-server/src/models"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetLocationsByUserID(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.SpendingLocation, error) {
	query := `
		SELECT id, user_id, name, category, created_at
		FROM spending_locations
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.SpendingLocation
	for rows.Next() {
		var l models.SpendingLocation
		err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Category, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func GetLocationByID(ctx context.Context, pool *pgxpool.Pool, userID, locationID string) (*models.SpendingLocation, error) {
	query := `
		SELECT id, user_id, name, category, created_at
		FROM spending_locations
		WHERE id = $1 AND user_id = $2
	`
	var l models.SpendingLocation
	err := pool.QueryRow(ctx, query, locationID, userID).
		Scan(&l.ID, &l.UserID, &l.Name, &l.Category, &l.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("location not found")
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &l, nil
}

func CreateLocation(ctx context.Context, pool *pgxpool.Pool, location *models.SpendingLocation) (*models.SpendingLocation, error) {
	query := `
		INSERT INTO spending_locations (user_id, name, category)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, category, created_at
	`
	var l models.SpendingLocation
	err := pool.QueryRow(ctx, query, location.UserID, location.Name, location.Category).
		Scan(&l.ID, &l.UserID, &l.Name, &l.Category, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func UpdateLocation(ctx context.Context, pool *pgxpool.Pool, location *models.SpendingLocation) (*models.SpendingLocation, error) {
	query := `
		UPDATE spending_locations
		SET name = $1, category = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, name, category, created_at
	`
	var l models.SpendingLocation
	err := pool.QueryRow(ctx, query, location.Name, location.Category, location.ID, location.UserID).
		Scan(&l.ID, &l.UserID, &l.Name, &l.Category, &l.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("location not found")
		}
		return nil, err
	}
	return &l, nil
}
