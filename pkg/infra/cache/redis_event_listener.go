package cache

import (
	"context"
	"reflect"
	"time"

	retry "github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/infra/cache/event"
)

const (
	reconnectDelay    = time.Second
	maxReconnectDelay = 30 * time.Second
)

type redisEventListener struct {
	logger      *logrus.Logger
	client      Client
	subscribers map[reflect.Type][]interface{}
}

// NewRedisEventListener fans messages of the given channels out to the
// subscribers registered for their concrete event type.
func NewRedisEventListener(logger *logrus.Logger, client Client) EventListener {
	return &redisEventListener{
		logger:      logger,
		client:      client,
		subscribers: make(map[reflect.Type][]interface{}),
	}
}

func RegisterEventSubscriber[T event.Event](listener EventListener, subscriber EventSubscriber[T]) {
	var evt T
	listener.Register(reflect.TypeOf(evt), subscriber)
}

func (r *redisEventListener) Register(eventType reflect.Type, subscriber interface{}) {
	r.subscribers[eventType] = append(r.subscribers[eventType], subscriber)
}

func (r *redisEventListener) Listen(ctx context.Context, channels ...Channel) {
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, string(ch))
	}

	backoff := newReconnectBackoff()
	for {
		if ctx.Err() != nil {
			r.logger.Info("redis pubsub listener shutting down")
			return
		}
		if r.listenOnce(ctx, names) {
			backoff = newReconnectBackoff()
		}
		if ctx.Err() != nil {
			r.logger.Info("redis pubsub listener shutting down")
			return
		}
		delay, _ := backoff.Next()
		r.logger.WithField("retry_in", delay.String()).Warn("redis pubsub disconnected, reconnecting")
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

func newReconnectBackoff() retry.Backoff {
	return retry.WithCappedDuration(maxReconnectDelay, retry.NewExponential(reconnectDelay))
}

// listenOnce reports whether the subscription was established.
func (r *redisEventListener) listenOnce(ctx context.Context, names []string) bool {
	pubSub := r.client.RedisClient().Subscribe(ctx, names...)
	defer func() { _ = pubSub.Close() }()

	if _, err := pubSub.Receive(ctx); err != nil {
		r.logger.WithError(err).Error("failed to subscribe to redis channels")
		return false
	}

	r.logger.WithField("channels", names).Debug("redis pubsub connected")

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = pubSub.Close()
		case <-stop:
		}
	}()

	for msg := range pubSub.Channel() {
		r.handleMessage(ctx, msg.Payload)
	}
	return true
}

func (r *redisEventListener) handleMessage(ctx context.Context, payload string) {
	ev, err := DecodeMessage([]byte(payload))
	if err != nil {
		r.logger.WithError(err).Error("error decoding redis message")
		return
	}

	for _, sub := range r.subscribers[reflect.TypeOf(ev)] {
		method := reflect.ValueOf(sub).MethodByName("OnEvent")
		if !method.IsValid() {
			continue
		}
		results := method.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(ev)})
		if len(results) > 0 && !results[0].IsNil() {
			if err, ok := results[0].Interface().(error); ok {
				r.logger.WithError(err).WithField("event_type", ev.Type()).Error("event subscriber failed")
			}
		}
	}
}
