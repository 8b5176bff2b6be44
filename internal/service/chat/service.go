// Package chat orchestrates one Q&A turn: validate the question, invoke the
// AI responder once, parse the structured reply, and persist history for
// signed-in users.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/askmatic/askly-server/internal/answer"
	"github.com/askmatic/askly-server/internal/model/chat"
	"github.com/askmatic/askly-server/internal/model/tutor"
	"github.com/askmatic/askly-server/internal/storage"
)

var (
	// ErrEmptyMessage rejects blank questions before any upstream call.
	ErrEmptyMessage = errors.New("message must not be empty")
	// ErrUpstream marks an AI responder failure. Clients get a generic
	// fallback message, never a partial envelope.
	ErrUpstream = errors.New("ai responder failed")
)

// Responder is the single upstream capability the orchestrator needs. The
// composition root injects the real model-backed service; tests inject fakes.
type Responder interface {
	Answer(ctx context.Context, tut tutor.Tutor, question string) (string, error)
}

const titleLimit = 60

// Service implements the chat orchestration described above.
type Service struct {
	responder Responder
	tutors    tutor.Store
	convs     storage.ConversationStore
	log       zerolog.Logger
}

// NewService wires the orchestrator's collaborators.
func NewService(responder Responder, tutors tutor.Store, convs storage.ConversationStore, log zerolog.Logger) *Service {
	return &Service{
		responder: responder,
		tutors:    tutors,
		convs:     convs,
		log:       log,
	}
}

// Ask runs one question/answer turn. The responder is invoked exactly once;
// there is no automatic retry. When userID is set the turn is appended to a
// conversation (created on demand when conversationID is empty) and the
// resulting conversation ID is returned alongside the envelope. A history
// write failure is logged but never fails an already-generated reply.
func (s *Service) Ask(ctx context.Context, userID, conversationID, message string) (answer.Envelope, string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return answer.Envelope{}, "", ErrEmptyMessage
	}

	tut := s.tutors.Default()

	raw, err := s.responder.Answer(ctx, tut, trimmed)
	if err != nil {
		s.log.Error().Err(err).Str("tutor", tut.ID).Msg("ai responder call failed")
		return answer.Envelope{}, "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	env := answer.Parse(raw)

	if userID != "" {
		conversationID = s.persistTurn(ctx, userID, conversationID, trimmed, raw)
	}

	return env, conversationID, nil
}

// persistTurn appends the user question and the raw reply to the
// conversation, creating it first when needed.
func (s *Service) persistTurn(ctx context.Context, userID, conversationID, question, reply string) string {
	if conversationID == "" {
		conv := chat.Conversation{UserID: userID, Title: truncateTitle(question)}
		if err := s.convs.Create(ctx, &conv); err != nil {
			s.log.Error().Err(err).Msg("failed to create conversation")
			return ""
		}
		conversationID = conv.ID
	}

	userMsg := chat.Message{Sender: chat.SenderUser, Content: question}
	if err := s.convs.AppendMessage(ctx, userID, conversationID, userMsg); err != nil {
		s.log.Error().Err(err).Str("conversation", conversationID).Msg("failed to save user message")
		return conversationID
	}

	botMsg := chat.Message{Sender: chat.SenderBot, Content: reply}
	if err := s.convs.AppendMessage(ctx, userID, conversationID, botMsg); err != nil {
		s.log.Error().Err(err).Str("conversation", conversationID).Msg("failed to save bot message")
	}

	return conversationID
}

// History returns one conversation with its messages.
func (s *Service) History(ctx context.Context, userID, conversationID string) (chat.Conversation, error) {
	return s.convs.Get(ctx, userID, conversationID)
}

// Conversations lists the user's conversations.
func (s *Service) Conversations(ctx context.Context, userID string) ([]chat.Conversation, error) {
	return s.convs.ListByUser(ctx, userID)
}

// Like adds a message text to the conversation's liked set. Liking the same
// text twice is a no-op.
func (s *Service) Like(ctx context.Context, userID, conversationID, text string) error {
	return s.convs.LikeMessage(ctx, userID, conversationID, text)
}

func truncateTitle(question string) string {
	runes := []rune(question)
	if len(runes) <= titleLimit {
		return question
	}
	return string(runes[:titleLimit])
}
