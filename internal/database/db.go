// Package database holds the credential bundle shape shared by the secret
// store, the session store and the SQL clients, plus the connector used to
// open per-request MySQL connections.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Credentials is the bundle stored in the secrets manager for both the shared
// auth database and each tenant database. The JSON tags match the secret
// payload keys.
type Credentials struct {
	Host     string `json:"db_host"`
	User     string `json:"db_user"`
	Password string `json:"db_password"`
	Name     string `json:"db_name"`
	Port     string `json:"db_port"`
}

// Connector opens a dedicated database connection for a single operation.
// Callers own the returned handle and must Close it on every exit path.
type Connector interface {
	Connect(ctx context.Context, creds Credentials) (*sql.DB, error)
}

// MySQLConnector connects to MySQL and verifies the connection with a ping.
type MySQLConnector struct{}

func (MySQLConnector) Connect(ctx context.Context, creds Credentials) (*sql.DB, error) {
	auth := creds.User
	if creds.Password != "" {
		auth = fmt.Sprintf("%s:%s", creds.User, creds.Password)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, creds.Host, creds.Port, creds.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// One connection per operation, released when the caller closes the handle.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
