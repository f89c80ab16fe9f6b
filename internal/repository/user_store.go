package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/scalexlabs/marketing-dashboard/internal/database"
	"github.com/scalexlabs/marketing-dashboard/internal/secrets"
)

// User mirrors the 'users' table.
type User struct {
	AppID        string
	PasswordHash string
	ClientID     string
	Email        string
	CreatedAt    time.Time
}

// UserStore is the auth store client: exact-match lookup by app id and
// one-time insert per app id.
type UserStore interface {
	// Find returns (nil, nil) when no row matches.
	Find(ctx context.Context, appID string) (*User, error)
	// Create inserts the user, or returns ErrAppIDExists.
	Create(ctx context.Context, u User) error
}

const schemaDDL = `CREATE TABLE IF NOT EXISTS users (
    app_id VARCHAR(50) PRIMARY KEY,
    password_hash VARCHAR(255) NOT NULL,
    client_id VARCHAR(50) NOT NULL,
    email VARCHAR(100) NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// MySQLUserStore resolves the shared auth-DB secret and opens a dedicated
// connection per operation. Every handle is closed on the way out, error
// paths included.
type MySQLUserStore struct {
	Secrets    secrets.Resolver
	Conn       database.Connector
	AuthSecret string
}

func (s *MySQLUserStore) open(ctx context.Context) (*sql.DB, error) {
	creds, err := s.Secrets.Resolve(ctx, s.AuthSecret)
	if err != nil {
		return nil, err
	}
	return s.Conn.Connect(ctx, creds)
}

func (s *MySQLUserStore) Find(ctx context.Context, appID string) (*User, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return nil, err
	}

	var u User
	err = db.QueryRowContext(ctx,
		"SELECT app_id, password_hash, client_id, email, created_at FROM users WHERE app_id = ? LIMIT 1",
		appID).Scan(&u.AppID, &u.PasswordHash, &u.ClientID, &u.Email, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MySQLUserStore) Create(ctx context.Context, u User) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return err
	}

	// Explicit duplicate check before the insert.
	var existing string
	err = db.QueryRowContext(ctx,
		"SELECT app_id FROM users WHERE app_id = ? LIMIT 1", u.AppID).Scan(&existing)
	if err == nil {
		return ErrAppIDExists
	}
	if err != sql.ErrNoRows {
		return err
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO users (app_id, password_hash, client_id, email) VALUES (?,?,?,?)",
		u.AppID, u.PasswordHash, u.ClientID, u.Email)
	return err
}
