package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwebster45206/story-commands/pkg/queue"
	"github.com/redis/go-redis/v9"
)

// TurnsKey is the Redis list the game engine consumes turns from.
const TurnsKey = "turns"

// TurnQueue hands player turns to the game engine over a Redis list.
// Producers RPUSH, the engine pops from the head.
type TurnQueue struct {
	client *Client
}

func NewTurnQueue(client *Client) *TurnQueue {
	return &TurnQueue{client: client}
}

// Enqueue appends a turn to the tail of the queue
func (tq *TurnQueue) Enqueue(ctx context.Context, req *queue.TurnRequest) error {
	if req.EnqueuedAt.IsZero() {
		req.EnqueuedAt = time.Now()
	}

	data, err := req.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize turn: %w", err)
	}

	if err := tq.client.rdb.RPush(ctx, TurnsKey, data).Err(); err != nil {
		tq.client.logger.Error("Failed to enqueue turn",
			"error", err,
			"request_id", req.RequestID,
			"session_id", req.SessionID)
		return fmt.Errorf("failed to enqueue turn: %w", err)
	}

	tq.client.logger.Debug("Turn enqueued",
		"request_id", req.RequestID,
		"session_id", req.SessionID,
		"kind", req.Kind)
	return nil
}

// Dequeue removes and returns the next turn. Returns nil if the queue is empty.
func (tq *TurnQueue) Dequeue(ctx context.Context) (*queue.TurnRequest, error) {
	result, err := tq.client.rdb.LPop(ctx, TurnsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue turn: %w", err)
	}
	return parseTurn(result)
}

// BlockingDequeue waits up to timeout for a turn. A zero timeout waits
// forever. Returns nil if the timeout expires.
func (tq *TurnQueue) BlockingDequeue(ctx context.Context, timeout time.Duration) (*queue.TurnRequest, error) {
	result, err := tq.client.rdb.BLPop(ctx, timeout, TurnsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue turn: %w", err)
	}

	// BLPop returns [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BLPop result: %v", result)
	}
	return parseTurn(result[1])
}

// Peek returns up to limit turns from the head without removing them.
// limit <= 0 returns all.
func (tq *TurnQueue) Peek(ctx context.Context, limit int) ([]*queue.TurnRequest, error) {
	end := int64(limit - 1)
	if limit <= 0 {
		end = -1
	}

	items, err := tq.client.rdb.LRange(ctx, TurnsKey, 0, end).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to peek turns: %w", err)
	}

	turns := make([]*queue.TurnRequest, 0, len(items))
	for _, item := range items {
		turn, err := parseTurn(item)
		if err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Depth returns the number of queued turns
func (tq *TurnQueue) Depth(ctx context.Context) (int, error) {
	count, err := tq.client.rdb.LLen(ctx, TurnsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue depth: %w", err)
	}
	return int(count), nil
}

func parseTurn(data string) (*queue.TurnRequest, error) {
	req, err := queue.FromJSON([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse turn: %w", err)
	}
	return req, nil
}
