package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/sirupsen/logrus"
)

const (
	maxOutputTokens = 1500
	maxAttempts     = 3
	firstBackoff    = 500 * time.Millisecond
)

// AnthropicClient calls the Messages API.
type AnthropicClient struct {
	messages anthropic.MessageService
	model    anthropic.Model
	log      logrus.FieldLogger
	backoff  time.Duration
}

func NewAnthropicClient(apiKey, model string, log logrus.FieldLogger) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		// retries are done here so they show up in the logs
		option.WithMaxRetries(0),
	)
	return &AnthropicClient{
		messages: client.Messages,
		model:    anthropic.Model(model),
		log:      log,
		backoff:  firstBackoff,
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   maxOutputTokens,
		Temperature: param.NewOpt(0.3),
		System:      []anthropic.TextBlockParam{{Text: p.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User)),
		},
	}

	wait := c.backoff
	for attempt := 1; ; attempt++ {
		msg, err := c.messages.New(ctx, params)
		if err == nil {
			return completionFrom(msg)
		}
		if attempt == maxAttempts || !retryable(err) {
			return nil, fmt.Errorf("anthropic messages (attempt %d): %w", attempt, err)
		}

		c.log.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"wait":    wait.String(),
		}).Warn("anthropic call failed, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
}

func completionFrom(msg *anthropic.Message) (*Completion, error) {
	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, errors.New("anthropic reply has no text block")
	}
	return &Completion{
		Text:         sb.String(),
		InputTokens:  msg.Usage.InputTokens,
		OutputTokens: msg.Usage.OutputTokens,
	}, nil
}

// retryable reports whether err is a rate limit, an overload or a server
// error. Transport errors are retried too.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return true
	}
	return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
}
