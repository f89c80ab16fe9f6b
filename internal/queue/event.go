// Package queue defines message payloads exchanged over the message broker.
package queue

// UserRegisteredEvent is published when a registration commits. It carries
// enough for downstream consumers to notify or audit without querying the
// auth database.
type UserRegisteredEvent struct {
	AppID        string `json:"app_id"`
	ClientID     string `json:"client_id"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"`
}

// UserLoggedInEvent is published after a successful login.
type UserLoggedInEvent struct {
	AppID      string `json:"app_id"`
	LoggedInAt string `json:"logged_in_at"`
}
