package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/gymstats/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

const (
	chatKeyPrefix = "gymstats-coach-chat||"
	// chat history of an inactive user is forgotten after a week
	chatTTL = 7 * 24 * time.Hour
)

// RedisChatHistory keeps the last coach conversation turns per user in a capped redis list.
type RedisChatHistory struct {
	redisClient *redis.Client
	maxMessages int
}

func NewRedisChatHistory(redisClient *redis.Client, maxTurns int) *RedisChatHistory {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &RedisChatHistory{
		redisClient: redisClient,
		// one turn is a question and an answer
		maxMessages: maxTurns * 2,
	}
}

func chatKey(userID string) string {
	return chatKeyPrefix + userID
}

// Recent returns the stored messages for the user, oldest first.
func (h *RedisChatHistory) Recent(ctx context.Context, userID string) (_ []Message, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.chat.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", userID))

	raw, err := h.redisClient.LRange(ctx, chatKey(userID), int64(-h.maxMessages), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("get chat history: %w", err)
	}

	messages := make([]Message, 0, len(raw))
	for _, r := range raw {
		var m Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			return nil, fmt.Errorf("decode chat message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// Append stores the given messages and trims the list to the configured size.
func (h *RedisChatHistory) Append(ctx context.Context, userID string, messages ...Message) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.chat.append")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", userID))

	if len(messages) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(messages))
	for _, m := range messages {
		b, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode chat message: %w", err)
		}
		values = append(values, string(b))
	}

	key := chatKey(userID)
	if err := h.redisClient.RPush(ctx, key, values...).Err(); err != nil {
		return fmt.Errorf("push chat messages: %w", err)
	}
	if err := h.redisClient.LTrim(ctx, key, int64(-h.maxMessages), -1).Err(); err != nil {
		return fmt.Errorf("trim chat history: %w", err)
	}
	if err := h.redisClient.Expire(ctx, key, chatTTL).Err(); err != nil {
		return fmt.Errorf("set chat history expiry: %w", err)
	}

	return nil
}
