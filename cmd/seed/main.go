package main

import (
	"buster-server/src/config"
	"buster-server/src/db"
	dbsql "buster-server/src/db/sql"
	"buster-server/src/models"
	"buster-server/src/util"
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// Seeds a demo user with twenty spending locations, each carrying one to
// three random amounts, so the neighborhood renders something worth looking
// at on a fresh database.

var seedLocations = []struct {
	Name     string
	Category string
}{
	{"Whole Foods", "groceries"},
	{"Trader Joe's", "groceries"},
	{"Safeway", "groceries"},
	{"Chipotle", "restaurants"},
	{"Olive Garden", "restaurants"},
	{"In-N-Out Burger", "restaurants"},
	{"Starbucks", "coffee"},
	{"Blue Bottle Coffee", "coffee"},
	{"Amazon", "shopping"},
	{"Target", "shopping"},
	{"Best Buy", "shopping"},
	{"AMC Theatres", "entertainment"},
	{"Steam", "entertainment"},
	{"Shell", "transport"},
	{"Uber", "transport"},
	{"PG&E", "utilities"},
	{"Comcast", "utilities"},
	{"CVS Pharmacy", "health"},
	{"24 Hour Fitness", "health"},
	{"United Airlines", "travel"},
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("DB migration failed: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("DemoPass123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	email := fmt.Sprintf("demo+%d@busterapp.com", time.Now().Unix())
	req := models.RegisterRequest{
		Email:     email,
		FirstName: "Demo",
		LastName:  "User",
	}
	resp, err := dbsql.CreateUserWithLocations(ctx, pool, req, string(hashed))
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("INFO: Created demo user %s (%s)", resp.Email, resp.ID)

	g, gctx := errgroup.WithContext(ctx)
	for _, seed := range seedLocations {
		g.Go(func() error {
			location, err := dbsql.CreateLocation(gctx, pool, &models.SpendingLocation{
				UserID:   resp.ID,
				Name:     seed.Name,
				Category: seed.Category,
			})
			if err != nil {
				return fmt.Errorf("create location %s: %w", seed.Name, err)
			}

			count := 1 + rand.Intn(3)
			for i := 0; i < count; i++ {
				amount := util.RoundAmount(rand.Float64() * 500)
				if amount < 1 {
					amount = 1
				}
				date := time.Now().AddDate(0, 0, -rand.Intn(90))
				_, err := dbsql.CreateAmount(gctx, pool, &models.SpendingAmount{
					SpendingLocationID: location.ID,
					Amount:             amount,
					TransactionDate:    date,
				})
				if err != nil {
					return fmt.Errorf("create amount for %s: %w", seed.Name, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("INFO: Seeded %d locations for %s", len(seedLocations), email)
	log.Printf("INFO: Log in with %s / DemoPass123", email)
}
