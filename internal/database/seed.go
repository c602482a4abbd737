package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default admin and a default author if no users exist.
// Both will be prompted to set up 2FA on first login.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	seedUsers := []struct {
		email, password, name, role string
	}{
		{"admin@newsdesk.local", "admin", "Admin", "admin"},
		{"author@newsdesk.local", "author", "Staff Writer", "author"},
	}

	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed bcrypt: %w", err)
		}
		_, err = db.Exec(`
			INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
			VALUES ($1, $2, $3, $4, $5)
		`, u.email, string(hash), u.name, u.role, false)
		if err != nil {
			return fmt.Errorf("seed insert %s: %w", u.role, err)
		}
	}

	slog.Info("database seeded with default users",
		"admin", "admin@newsdesk.local",
		"author", "author@newsdesk.local",
	)

	return nil
}
