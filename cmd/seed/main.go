package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/eventtix/ticket-booking/config"
	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID int64
	err = db.QueryRow(`
		INSERT INTO users (username, password_hash, role, enabled)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (username) DO UPDATE SET role = EXCLUDED.role
		RETURNING id
	`, "admin", hash, entity.RoleAdmin).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%d username=admin password=%s\n", adminID, password)

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (username, password_hash, role, enabled)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`, "demo", hash, entity.RoleUser).Scan(&userID)
	if err != nil && err != sql.ErrNoRows {
		log.Fatalf("failed to seed demo user: %v", err)
	}
	fmt.Printf("seeded user: username=demo password=%s\n", password)

	events := []struct {
		name        string
		description string
		date        time.Time
		capacity    int
	}{
		{"Go Meetup", "Monthly Go meetup with talks and pizza", time.Now().AddDate(0, 1, 0), 120},
		{"Jazz Evening", "Live jazz quartet, open seating", time.Now().AddDate(0, 2, 0), 80},
		{"Tech Conference", "Two-day conference, single track", time.Now().AddDate(0, 3, 0), 500},
	}
	for _, e := range events {
		var id int64
		err := db.QueryRow(`
			INSERT INTO events (name, description, event_date, capacity, available_seats)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING id
		`, e.name, e.description, e.date, e.capacity).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed event %q: %v", e.name, err)
		}
		fmt.Printf("seeded event: id=%d name=%q capacity=%d\n", id, e.name, e.capacity)
	}
}
