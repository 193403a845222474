// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openAIProvider talks to any OpenAI-compatible chat endpoint. The base URL
// override points it at Groq in production; tests point it at a stub.
type openAIProvider struct {
	client    openai.Client
	textModel string
	codeModel string
	maxTokens int64
}

func newOpenAIProvider(cfg Config) *openAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.PrimaryAPIKey)}
	if cfg.PrimaryBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.PrimaryBaseURL))
	}
	return &openAIProvider{
		client:    openai.NewClient(opts...),
		textModel: cfg.TextModel,
		codeModel: cfg.CodeModel,
		maxTokens: cfg.MaxTokens,
	}
}

func (p *openAIProvider) Name() string { return "openai" }

func (p *openAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	model := p.textModel
	if req.UseCodeModel && p.codeModel != "" {
		model = p.codeModel
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = p.maxTokens
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return completion.Choices[0].Message.Content, nil
}
