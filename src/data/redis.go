package data

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yunbow/line-faq-bot/src/types"
)

const (
	eventPrefix             = "faqbot:event:"
	DefaultSubscriberStream = "faqbot.subscribers"
	DefaultEventTTL         = 10 * time.Minute
)

// ConnectRedis parses a redis:// URL and checks the server answers.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// EventLog remembers handled webhook events for a TTL.
type EventLog struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewEventLog(rdb *redis.Client, ttl time.Duration) *EventLog {
	if ttl <= 0 {
		ttl = DefaultEventTTL
	}
	return &EventLog{rdb: rdb, ttl: ttl}
}

// MarkSeen claims key and reports whether this is its first sighting.
func (l *EventLog) MarkSeen(ctx context.Context, key string) (bool, error) {
	return l.rdb.SetNX(ctx, eventPrefix+key, time.Now().Unix(), l.ttl).Result()
}

// SubscriberStream appends follow-state changes to a Redis stream.
type SubscriberStream struct {
	rdb    *redis.Client
	stream string
}

func NewSubscriberStream(rdb *redis.Client, stream string) *SubscriberStream {
	if stream == "" {
		stream = DefaultSubscriberStream
	}
	return &SubscriberStream{rdb: rdb, stream: stream}
}

func (s *SubscriberStream) SubscriberChanged(ctx context.Context, change types.SubscriberChange) error {
	_, err := s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"event":       change.Event,
			"userId":      change.UserID,
			"sourceType":  string(change.SourceType),
			"followState": int(change.State),
			"created":     change.Created,
			"time":        change.At.Unix(),
		},
	}).Result()
	return err
}
