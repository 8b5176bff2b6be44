// Package ai wraps the upstream chat model behind the tutoring prompts.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/askmatic/askly-server/internal/answer"
	"github.com/askmatic/askly-server/internal/config"
	"github.com/askmatic/askly-server/internal/model/tutor"
)

// Service generates tutoring answers through a compiled prompt chain.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
	timeout   time.Duration
	log       zerolog.Logger
}

// NewService builds the chat model from configuration and compiles the chain.
func NewService(ctx context.Context, cfg config.AIConfig, log zerolog.Logger) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel, cfg.RequestTimeout, log)
}

// NewServiceWithModel compiles the chain over an injected model. Tests pass a
// fake here; the composition root owns the real model's lifecycle.
func NewServiceWithModel(ctx context.Context, chatModel model.ChatModel, timeout time.Duration, log zerolog.Logger) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		chain:     runnable,
		timeout:   timeout,
		log:       log,
	}, nil
}

// Answer asks the model the user's question wrapped in the three-section
// template. Exactly one upstream call per invocation, bounded by the
// configured deadline; failures are returned as-is and never retried here.
func (s *Service) Answer(ctx context.Context, tut tutor.Tutor, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	input := map[string]any{
		"system": BuildSystemInstruction(tut),
		"query":  answer.BuildPrompt(question),
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}

	s.log.Debug().Str("tutor", tut.ID).Int("length", len(response.Content)).Msg("generated answer")
	return response.Content, nil
}

// Caption describes an uploaded image (exam question, assignment, code
// screenshot) for the student.
func (s *Service) Caption(ctx context.Context, imageBase64 string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := []*schema.Message{
		schema.SystemMessage(captionInstruction),
		{
			Role: schema.User,
			MultiContent: []schema.ChatMessagePart{
				{
					Type: schema.ChatMessagePartTypeImageURL,
					ImageURL: &schema.ChatMessageImageURL{
						URL: "data:image/jpeg;base64," + imageBase64,
					},
				},
				{
					Type: schema.ChatMessagePartTypeText,
					Text: "Caption this image.",
				},
			},
		},
	}

	response, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to caption image: %w", err)
	}
	return response.Content, nil
}
