package notifier

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

const pingTimeout = 5 * time.Second

// RedisNotifier publishes notices as JSON on a Redis pub/sub channel so a UI
// process can render them.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	logger  ports.Logger
}

// RedisNotifierParams contains parameters for creating a Redis notifier
type RedisNotifierParams struct {
	Config  *config.RedisConfig
	Channel string
	Logger  ports.Logger
}

// NewRedisNotifier connects to Redis and verifies the connection with a ping
func NewRedisNotifier(params RedisNotifierParams) (*RedisNotifier, error) {
	if params.Config == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}
	if params.Channel == "" {
		return nil, errors.NewConfigurationError("notifier channel cannot be empty", nil)
	}
	if params.Logger == nil {
		return nil, errors.NewConfigurationError("logger cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         params.Config.Addr,
		Password:     params.Config.Password,
		DB:           params.Config.DB,
		DialTimeout:  time.Duration(params.Config.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(params.Config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(params.Config.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewExternalAPIError("failed to connect to Redis", err)
	}

	return &RedisNotifier{client: client, channel: params.Channel, logger: params.Logger}, nil
}

// Notify publishes notice. Publish failures are logged, never returned.
func (n *RedisNotifier) Notify(ctx context.Context, notice ports.Notice) {
	payload, err := json.Marshal(notice)
	if err != nil {
		n.logger.Error("Failed to encode notice", ports.F("error", err))
		return
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		n.logger.Error("Failed to publish notice",
			ports.F("channel", n.channel),
			ports.F("message", notice.Message),
			ports.F("error", err))
	}
}

// Ping checks if Redis connection is alive
func (n *RedisNotifier) Ping(ctx context.Context) error {
	if err := n.client.Ping(ctx).Err(); err != nil {
		return errors.NewExternalAPIError("Redis ping failed", err)
	}
	return nil
}

// Close closes the Redis client connection
func (n *RedisNotifier) Close() error {
	if err := n.client.Close(); err != nil {
		return errors.NewExternalAPIError("failed to close Redis connection", err)
	}
	return nil
}
