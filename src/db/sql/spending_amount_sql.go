package db

import (
	"buster-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAmountsByLocationID(ctx context.Context, pool *pgxpool.Pool, locationID string) ([]models.SpendingAmount, error) {
	query := `
		SELECT id, spending_location_id, amount, transaction_date, description, created_at
		FROM spending_amounts
		WHERE spending_location_id = $1
		ORDER BY transaction_date DESC
	`
	rows, err := pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amounts []models.SpendingAmount
	for rows.Next() {
		var a models.SpendingAmount
		err := rows.Scan(&a.ID, &a.SpendingLocationID, &a.Amount, &a.TransactionDate, &a.Description, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, a)
	}
	return amounts, rows.Err()
}

func CreateAmount(ctx context.Context, pool *pgxpool.Pool, amount *models.SpendingAmount) (*models.SpendingAmount, error) {
	query := `
		INSERT INTO spending_amounts (spending_location_id, amount, transaction_date, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, spending_location_id, amount, transaction_date, description, created_at
	`
	var a models.SpendingAmount
	err := pool.QueryRow(ctx, query, amount.SpendingLocationID, amount.Amount, amount.TransactionDate, amount.Description).
		Scan(&a.ID, &a.SpendingLocationID, &a.Amount, &a.TransactionDate, &a.Description, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAmount removes one amount row. The location id ties the row to the
// location the caller was already verified to own, so an amount id belonging
// to someone else's location deletes nothing.
func DeleteAmount(ctx context.Context, pool *pgxpool.Pool, locationID, amountID string) error {
	query := `DELETE FROM spending_amounts WHERE id = $1 AND spending_location_id = $2`
	cmd, err := pool.Exec(ctx, query, amountID, locationID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("amount not found")
	}
	return nil
}

func GetTotalByLocationID(ctx context.Context, pool *pgxpool.Pool, locationID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM spending_amounts
		WHERE spending_location_id = $1
	`
	var total float64
	err := pool.QueryRow(ctx, query, locationID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// GetAllTotalsByLocationIDs fetches every amount row for the id set in one
// query and folds them into a per-location total. The join scopes the rows to
// the given user, so ids for someone else's locations contribute nothing and
// fold to 0 like any id with no rows.
func GetAllTotalsByLocationIDs(ctx context.Context, pool *pgxpool.Pool, userID string, locationIDs []string) (map[string]float64, error) {
	if len(locationIDs) == 0 {
		return map[string]float64{}, nil
	}

	query := `
		SELECT sa.spending_location_id, sa.amount
		FROM spending_amounts sa
		JOIN spending_locations sl ON sl.id = sa.spending_location_id
		WHERE sa.spending_location_id = ANY($1) AND sl.user_id = $2
	`
	rows, err := pool.Query(ctx, query, locationIDs, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amountRows []LocationAmount
	for rows.Next() {
		var r LocationAmount
		if err := rows.Scan(&r.LocationID, &r.Amount); err != nil {
			return nil, err
		}
		amountRows = append(amountRows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return FoldTotals(locationIDs, amountRows), nil
}

// LocationAmount is one (location, amount) pair from spending_amounts.
type LocationAmount struct {
	LocationID string
	Amount     float64
}

// FoldTotals sums amount rows per location, defaulting every requested id to 0.
func FoldTotals(locationIDs []string, rows []LocationAmount) map[string]float64 {
	totals := make(map[string]float64, len(locationIDs))
	for _, id := range locationIDs {
		totals[id] = 0
	}
	for _, r := range rows {
		totals[r.LocationID] += r.Amount
	}
	return totals
}
