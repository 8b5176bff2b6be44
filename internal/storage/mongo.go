package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/askmatic/askly-server/internal/config"
	"github.com/askmatic/askly-server/internal/model/chat"
	"github.com/askmatic/askly-server/internal/model/user"
)

// MongoStore persists users and conversations in a document database.
// Conversations embed their message array in a single document.
type MongoStore struct {
	client        *mongo.Client
	users         *mongo.Collection
	conversations *mongo.Collection
}

// NewMongoStore connects to the configured database and ensures the unique
// email index the registration flow relies on.
func NewMongoStore(ctx context.Context, cfg config.MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("storage: connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("storage: ping mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &MongoStore{
		client:        client,
		users:         db.Collection("users"),
		conversations: db.Collection("conversations"),
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("storage: ensure email index: %w", err)
	}

	return s, nil
}

// Users implements Store.
func (s *MongoStore) Users() UserStore { return &mongoUsers{coll: s.users} }

// Conversations implements Store.
func (s *MongoStore) Conversations() ConversationStore {
	return &mongoConversations{coll: s.conversations}
}

// Close implements Store.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoUsers struct {
	coll *mongo.Collection
}

func (s *mongoUsers) Create(ctx context.Context, u *user.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = strings.ToLower(u.Email)

	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("storage: insert user: %w", err)
	}
	return nil
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := s.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("storage: find user by email: %w", err)
	}
	return u, nil
}

func (s *mongoUsers) FindByID(ctx context.Context, id string) (user.User, error) {
	var u user.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("storage: find user by id: %w", err)
	}
	return u, nil
}

type mongoConversations struct {
	coll *mongo.Collection
}

func (s *mongoConversations) Create(ctx context.Context, conv *chat.Conversation) error {
	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = now
	}
	conv.UpdatedAt = now
	if conv.Messages == nil {
		conv.Messages = []chat.Message{}
	}
	if conv.Liked == nil {
		conv.Liked = []string{}
	}

	if _, err := s.coll.InsertOne(ctx, conv); err != nil {
		return fmt.Errorf("storage: insert conversation: %w", err)
	}
	return nil
}

func (s *mongoConversations) Get(ctx context.Context, userID, conversationID string) (chat.Conversation, error) {
	var conv chat.Conversation
	err := s.coll.FindOne(ctx, ownedFilter(userID, conversationID)).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return chat.Conversation{}, ErrNotFound
	}
	if err != nil {
		return chat.Conversation{}, fmt.Errorf("storage: find conversation: %w", err)
	}
	return conv, nil
}

func (s *mongoConversations) ListByUser(ctx context.Context, userID string) ([]chat.Conversation, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("storage: list conversations: %w", err)
	}

	out := []chat.Conversation{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("storage: decode conversations: %w", err)
	}
	return out, nil
}

func (s *mongoConversations) AppendMessage(ctx context.Context, userID, conversationID string, msg chat.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	res, err := s.coll.UpdateOne(ctx, ownedFilter(userID, conversationID), bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("storage: append message: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoConversations) LikeMessage(ctx context.Context, userID, conversationID, text string) error {
	// $addToSet keeps the liked list a set even under concurrent likes.
	res, err := s.coll.UpdateOne(ctx, ownedFilter(userID, conversationID), bson.M{
		"$addToSet": bson.M{"liked": text},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("storage: like message: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func ownedFilter(userID, conversationID string) bson.M {
	return bson.M{"_id": conversationID, "userId": userID}
}
