package chat

import (
	"weatherdash.app/internal/core/city"
	"weatherdash.app/pkg/errors"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is user or assistant.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ParseRole returns the role named s.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", errors.NewValidationError("chat role must be user or assistant, got " + s)
	}
	return r, nil
}

// Message is one entry of a conversation. ID is a ULID carrying Timestamp,
// Timestamp is Unix milliseconds.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Request asks a question about the weather in City.
type Request struct {
	Question string    `json:"question" validate:"required"`
	City     city.City `json:"city"`
}

// Response is a single, non-streamed answer.
type Response struct {
	Answer     string   `json:"answer" validate:"required"`
	References []string `json:"references"`
}
