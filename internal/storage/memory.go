package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askmatic/askly-server/internal/model/chat"
	"github.com/askmatic/askly-server/internal/model/user"
)

// MemoryStore keeps everything in process memory. Suitable for development
// and tests; data does not survive a restart.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]user.User
	usersByEmail  map[string]string
	conversations map[string]chat.Conversation
}

// NewMemoryStore bootstraps an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]user.User),
		usersByEmail:  make(map[string]string),
		conversations: make(map[string]chat.Conversation),
	}
}

// Users implements Store.
func (s *MemoryStore) Users() UserStore { return (*memoryUsers)(s) }

// Conversations implements Store.
func (s *MemoryStore) Conversations() ConversationStore { return (*memoryConversations)(s) }

// Close implements Store.
func (s *MemoryStore) Close(_ context.Context) error { return nil }

type memoryUsers MemoryStore

func (s *memoryUsers) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := s.usersByEmail[key]; exists {
		return ErrDuplicateEmail
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	s.users[u.ID] = *u
	s.usersByEmail[key] = u.ID
	return nil
}

func (s *memoryUsers) FindByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return user.User{}, ErrNotFound
	}
	return s.users[id], nil
}

func (s *memoryUsers) FindByID(_ context.Context, id string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, ErrNotFound
	}
	return u, nil
}

type memoryConversations MemoryStore

func (s *memoryConversations) Create(_ context.Context, conv *chat.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = now
	}
	conv.UpdatedAt = now

	s.conversations[conv.ID] = cloneConversation(*conv)
	return nil
}

func (s *memoryConversations) Get(_ context.Context, userID, conversationID string) (chat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[conversationID]
	if !ok || conv.UserID != userID {
		return chat.Conversation{}, ErrNotFound
	}
	return cloneConversation(conv), nil
}

func (s *memoryConversations) ListByUser(_ context.Context, userID string) ([]chat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]chat.Conversation, 0, 8)
	for _, conv := range s.conversations {
		if conv.UserID == userID {
			out = append(out, cloneConversation(conv))
		}
	}
	return out, nil
}

func (s *memoryConversations) AppendMessage(_ context.Context, userID, conversationID string, msg chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok || conv.UserID != userID {
		return ErrNotFound
	}

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = time.Now().UTC()
	s.conversations[conversationID] = conv
	return nil
}

func (s *memoryConversations) LikeMessage(_ context.Context, userID, conversationID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok || conv.UserID != userID {
		return ErrNotFound
	}

	// Set semantics: liking the same text twice is a no-op.
	if conv.HasLiked(text) {
		return nil
	}

	conv.Liked = append(conv.Liked, text)
	conv.UpdatedAt = time.Now().UTC()
	s.conversations[conversationID] = conv
	return nil
}

func cloneConversation(conv chat.Conversation) chat.Conversation {
	conv.Messages = append([]chat.Message(nil), conv.Messages...)
	conv.Liked = append([]string(nil), conv.Liked...)
	return conv
}
