package db

import (
	appdb "buster-server/src/db"
	"buster-server/src/models"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// These tests need a real database; set TEST_DATABASE_URL to run them.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	if err := appdb.RunMigrations(url); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	pool, err := appdb.Connect(context.Background(), url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool, tag string) string {
	t.Helper()
	email := fmt.Sprintf("%s+%d@example.com", tag, time.Now().UnixNano())
	resp, err := CreateUserWithLocations(context.Background(), pool, models.RegisterRequest{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
	}, "not-a-real-hash")
	if err != nil {
		t.Fatalf("create user %s: %v", tag, err)
	}
	return resp.ID
}

func createTestLocation(t *testing.T, pool *pgxpool.Pool, userID, name string) *models.SpendingLocation {
	t.Helper()
	loc, err := CreateLocation(context.Background(), pool, &models.SpendingLocation{
		UserID:   userID,
		Name:     name,
		Category: "groceries",
	})
	if err != nil {
		t.Fatalf("create location %s: %v", name, err)
	}
	return loc
}

func createTestAmount(t *testing.T, pool *pgxpool.Pool, locationID string, value float64) *models.SpendingAmount {
	t.Helper()
	a, err := CreateAmount(context.Background(), pool, &models.SpendingAmount{
		SpendingLocationID: locationID,
		Amount:             value,
		TransactionDate:    time.Now(),
	})
	if err != nil {
		t.Fatalf("create amount: %v", err)
	}
	return a
}

// Batch totals must never expose another user's spend, even when the caller
// supplies that user's location ids directly.
func TestGetAllTotalsByLocationIDsScopedToUser(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	owner := createTestUser(t, pool, "owner")
	other := createTestUser(t, pool, "other")
	ownerLoc := createTestLocation(t, pool, owner, "Owner Grocery")
	createTestAmount(t, pool, ownerLoc.ID, 123.45)

	totals, err := GetAllTotalsByLocationIDs(ctx, pool, owner, []string{ownerLoc.ID})
	if err != nil {
		t.Fatalf("owner totals: %v", err)
	}
	if totals[ownerLoc.ID] != 123.45 {
		t.Errorf("owner total = %v, want 123.45", totals[ownerLoc.ID])
	}

	totals, err = GetAllTotalsByLocationIDs(ctx, pool, other, []string{ownerLoc.ID})
	if err != nil {
		t.Fatalf("other totals: %v", err)
	}
	if totals[ownerLoc.ID] != 0 {
		t.Errorf("foreign location total = %v, want 0", totals[ownerLoc.ID])
	}
}

// Deleting an amount through a location the caller owns must not reach rows
// that belong to a different location.
func TestDeleteAmountScopedToLocation(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	owner := createTestUser(t, pool, "owner")
	attacker := createTestUser(t, pool, "attacker")
	ownerLoc := createTestLocation(t, pool, owner, "Owner Grocery")
	attackerLoc := createTestLocation(t, pool, attacker, "Attacker Front")
	victim := createTestAmount(t, pool, ownerLoc.ID, 50)

	if err := DeleteAmount(ctx, pool, attackerLoc.ID, victim.ID); err == nil {
		t.Fatal("delete through a foreign location succeeded, want not found")
	}

	amounts, err := GetAmountsByLocationID(ctx, pool, ownerLoc.ID)
	if err != nil {
		t.Fatalf("get amounts: %v", err)
	}
	if len(amounts) != 1 {
		t.Fatalf("owner has %d amounts after foreign delete attempt, want 1", len(amounts))
	}

	if err := DeleteAmount(ctx, pool, ownerLoc.ID, victim.ID); err != nil {
		t.Fatalf("legitimate delete failed: %v", err)
	}
}
