package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultModel = "claude-haiku-4-5-20251001"

// maxTokens bounds a single simulated reply or judge payload.
const maxTokens = 1024

// Live delegates completions to the Anthropic Messages API. It does not
// retry: a failed call surfaces as a *CallError and aborts the persona run
// it belongs to.
type Live struct {
	client anthropic.Client
	model  string
}

// NewLive constructs the live backend. The client itself is built eagerly so
// that credential problems surface at resolution time, before the first turn
// is simulated.
func NewLive(model, apiKey string) *Live {
	if model == "" {
		model = defaultModel
	}
	return &Live{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Live implements [Responder].
func (*Live) Live() bool { return true }

// Complete implements [Responder].
func (l *Live) Complete(ctx context.Context, messages []Message, temperature float64) (string, error) {
	system, params := splitMessages(messages)

	msg, err := l.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(l.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		System:      system,
		Messages:    params,
	})
	if err != nil {
		return "", &CallError{Op: "complete", Err: err}
	}

	text := extractText(msg)
	if text == "" {
		return "", &CallError{Op: "complete", Err: errors.New("empty completion")}
	}
	return text, nil
}

// CompleteStructured implements [Responder]. The judge runs at temperature 0
// and its output must decode into a StructuredReview.
func (l *Live) CompleteStructured(ctx context.Context, messages []Message) (*StructuredReview, error) {
	text, err := l.Complete(ctx, messages, 0)
	if err != nil {
		return nil, err
	}
	return DecodeReview(text)
}

// splitMessages separates system instructions (Anthropic system blocks) from
// the user/assistant conversation.
func splitMessages(messages []Message) ([]anthropic.TextBlockParam, []anthropic.MessageParam) {
	var system []anthropic.TextBlockParam
	var rest []anthropic.MessageParam

	for _, m := range messages {
		switch m.Role {
		case MessageRoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case MessageRoleAssistant:
			rest = append(rest, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			rest = append(rest, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	return system, rest
}

func extractText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "")
}
