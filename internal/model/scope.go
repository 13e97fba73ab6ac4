package model

import "github.com/google/uuid"

// Scope carries the identity of whoever triggered a request.
type Scope struct {
	UserID    string
	Username  string
	ChatID    int64
	Source    Source
	RequestID string
}

// NewScope returns a Scope with a fresh request id.
func NewScope(source Source, userID, username string) Scope {
	return Scope{
		UserID:    userID,
		Username:  username,
		Source:    source,
		RequestID: uuid.NewString(),
	}
}
