// Package ai talks to the Gemini API for the chat assistant.
package ai

import (
	"context"
	"errors"
	"fmt"

	"blood-donation-api/config"
	"blood-donation-api/internal/domain/entity"

	"google.golang.org/genai"
)

var ErrEmptyReply = errors.New("model returned an empty reply")

type GeminiModel struct {
	client *genai.Client
	model  string
}

func NewGeminiModel(ctx context.Context, cfg config.AIConfig) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiModel{client: client, model: cfg.Model}, nil
}

// Reply sends the stored history followed by the new user message.
func (g *GeminiModel) Reply(ctx context.Context, systemInstruction string, history []entity.Message, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Sender == entity.MessageSenderModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Message, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
