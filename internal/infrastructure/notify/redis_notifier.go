package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"eldercare-monitor/internal/config"
	domainPairing "eldercare-monitor/internal/domain/pairing"
)

// RedisNotifier publishes pairing status transitions on a per-request
// pub/sub channel so clients can subscribe instead of polling GetStatus.
type RedisNotifier struct {
	client *redis.Client
}

// statusEvent is the JSON payload published on status transitions.
type statusEvent struct {
	PairingRequestID string `json:"pairing_request_id"`
	Status           string `json:"status"`
	Timestamp        int64  `json:"timestamp"`
}

func NewRedisNotifier(cfg *config.RedisConfig) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisNotifier{client: client}, nil
}

// ChannelFor returns the pub/sub channel carrying events for one pairing
// request. Clients subscribe right after CreatePairing returns the ID.
func ChannelFor(requestID uuid.UUID) string {
	return "pairing:status:" + requestID.String()
}

func (n *RedisNotifier) NotifyStatusChange(ctx context.Context, requestID uuid.UUID, status domainPairing.Status) error {
	payload, err := json.Marshal(statusEvent{
		PairingRequestID: requestID.String(),
		Status:           string(status),
		Timestamp:        time.Now().Unix(),
	})
	if err != nil {
		return err
	}

	if err := n.client.Publish(ctx, ChannelFor(requestID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish pairing status event: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
