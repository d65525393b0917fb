package cache

import (
	"context"
	"encoding/json"

	"github.com/sportsfeed/contentguard/pkg/infra/cache/event"
)

type redisEventPublisher struct {
	client  Client
	channel Channel
}

func NewRedisEventPublisher(client Client, channel Channel) EventPublisher {
	return &redisEventPublisher{
		client:  client,
		channel: channel,
	}
}

func (p *redisEventPublisher) Publish(ctx context.Context, ev event.Event) error {
	data, err := EncodeMessage(ev)
	if err != nil {
		return err
	}
	return p.client.RedisClient().Publish(ctx, string(p.channel), data).Err()
}

// EncodeMessage wraps an event in the RedisMessage envelope consumers decode.
func EncodeMessage(ev event.Event) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return json.Marshal(RedisMessage{
		Type:  ev.Type(),
		Event: b,
	})
}
