package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askmatic/askly-server/internal/model/chat"
	"github.com/askmatic/askly-server/internal/model/user"
)

func TestMemoryUsersDuplicateEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := &user.User{Email: "a@b.com", PasswordHash: "h1"}
	require.NoError(t, store.Users().Create(ctx, first))

	dup := &user.User{Email: "A@B.com", PasswordHash: "h2"}
	err := store.Users().Create(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// The failed registration must not have created a record.
	got, err := store.Users().FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "h1", got.PasswordHash)
}

func TestMemoryUsersFindByID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	u := &user.User{Email: "a@b.com"}
	require.NoError(t, store.Users().Create(ctx, u))
	require.NotEmpty(t, u.ID)

	got, err := store.Users().FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)

	_, err = store.Users().FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryConversationsOwnership(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	conv := &chat.Conversation{UserID: "owner"}
	require.NoError(t, store.Conversations().Create(ctx, conv))

	_, err := store.Conversations().Get(ctx, "intruder", conv.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Conversations().AppendMessage(ctx, "intruder", conv.ID, chat.Message{Sender: chat.SenderUser, Content: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryConversationsAppendAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	conv := &chat.Conversation{UserID: "u1", Title: "linked lists"}
	require.NoError(t, store.Conversations().Create(ctx, conv))

	require.NoError(t, store.Conversations().AppendMessage(ctx, "u1", conv.ID,
		chat.Message{Sender: chat.SenderUser, Content: "question"}))
	require.NoError(t, store.Conversations().AppendMessage(ctx, "u1", conv.ID,
		chat.Message{Sender: chat.SenderBot, Content: "answer"}))

	got, err := store.Conversations().Get(ctx, "u1", conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chat.SenderUser, got.Messages[0].Sender)
	assert.Equal(t, chat.SenderBot, got.Messages[1].Sender)
	assert.NotEmpty(t, got.Messages[0].ID)
}

func TestMemoryConversationsLikeIsSet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	conv := &chat.Conversation{UserID: "u1"}
	require.NoError(t, store.Conversations().Create(ctx, conv))

	require.NoError(t, store.Conversations().LikeMessage(ctx, "u1", conv.ID, "great answer"))
	require.NoError(t, store.Conversations().LikeMessage(ctx, "u1", conv.ID, "great answer"))

	got, err := store.Conversations().Get(ctx, "u1", conv.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"great answer"}, got.Liked)
}

func TestMemoryConversationsListByUser(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Conversations().Create(ctx, &chat.Conversation{UserID: "u1"}))
	require.NoError(t, store.Conversations().Create(ctx, &chat.Conversation{UserID: "u1"}))
	require.NoError(t, store.Conversations().Create(ctx, &chat.Conversation{UserID: "u2"}))

	list, err := store.Conversations().ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
