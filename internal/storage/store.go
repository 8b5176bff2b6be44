// Package storage defines the persistence boundary for users and
// conversations, with a document-store implementation for deployments and an
// in-memory implementation for development and tests.
package storage

import (
	"context"
	"errors"

	"github.com/askmatic/askly-server/internal/model/chat"
	"github.com/askmatic/askly-server/internal/model/user"
)

var (
	// ErrNotFound is returned when a record does not exist or belongs to a
	// different user.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when registration reuses an email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the credential store. It is the sole writer of user records.
type UserStore interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (user.User, error)
	FindByID(ctx context.Context, id string) (user.User, error)
}

// ConversationStore persists chat history for signed-in users.
type ConversationStore interface {
	Create(ctx context.Context, conv *chat.Conversation) error
	Get(ctx context.Context, userID, conversationID string) (chat.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]chat.Conversation, error)
	AppendMessage(ctx context.Context, userID, conversationID string, msg chat.Message) error
	LikeMessage(ctx context.Context, userID, conversationID, text string) error
}

// Store bundles the per-entity stores behind one lifecycle.
type Store interface {
	Users() UserStore
	Conversations() ConversationStore
	Close(ctx context.Context) error
}
