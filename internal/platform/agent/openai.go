package agent

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/env"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/logger"
)

type openAIAgent struct {
	log    *logger.Logger
	client *openai.Client
	model  string
	system string
}

func NewOpenAIAgent(log *logger.Logger) (Agent, error) {
	apiKey := env.String("OPENAI_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	model := env.String("OPENAI_MODEL", openai.GPT4oMini)
	system := env.String("AGENT_SYSTEM_PROMPT", "Responda em português do Brasil")

	agentLog := log.With("service", "OpenAIAgent")
	agentLog.Info("Initializing OpenAI agent", "model", model)

	return &openAIAgent{
		log:    agentLog,
		client: openai.NewClient(apiKey),
		model:  model,
		system: system,
	}, nil
}

func (a *openAIAgent) Complete(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)+1),
	}
	if a.system != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: a.system,
		})
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openAIRole(m.Role),
			Content: m.Content,
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func openAIRole(r domain.Role) string {
	switch r {
	case domain.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	case domain.RoleSystem:
		return openai.ChatMessageRoleSystem
	default:
		return openai.ChatMessageRoleUser
	}
}
