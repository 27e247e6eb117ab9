package db

import (
	"buster-server/src/models"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, id string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, first_name, last_name, bank, current_balance, address, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	err := pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bank,
		&user.CurrentBalance,
		&user.Address,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &user, nil
}

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, first_name, last_name, bank, current_balance, address, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	err := pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bank,
		&user.CurrentBalance,
		&user.Address,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &user, nil
}

// CreateUserWithLocations creates the user row and its seed spending locations
// in one transaction, so signup can never leave a user with a partial seed.
func CreateUserWithLocations(ctx context.Context, pool *pgxpool.Pool, req models.RegisterRequest, hashedPassword string) (*models.RegisterResponse, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID string
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, first_name, last_name, bank, current_balance, address, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, req.Email, req.FirstName, req.LastName, req.Bank, req.CurrentBalance, req.Address, hashedPassword).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	for _, loc := range req.SpendingLocations {
		if loc.Name == "" {
			continue
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO spending_locations (user_id, name, category)
			VALUES ($1, $2, $3)
		`, userID, loc.Name, loc.Category)
		if err != nil {
			return nil, fmt.Errorf("failed to create seed location %q: %w", loc.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	resp := models.RegisterResponse{
		ID:        userID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	return &resp, nil
}

func UpdateUser(ctx context.Context, pool *pgxpool.Pool, user *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, bank = $3, current_balance = $4, address = $5
		WHERE id = $6
		RETURNING id, email, first_name, last_name, bank, current_balance, address, password_hash, created_at
	`
	var u models.User
	err := pool.QueryRow(ctx, query, user.FirstName, user.LastName, user.Bank, user.CurrentBalance, user.Address, user.ID).Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Bank,
		&u.CurrentBalance,
		&u.Address,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &u, nil
}
