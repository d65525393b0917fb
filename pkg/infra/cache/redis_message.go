package cache

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/sportsfeed/contentguard/pkg/infra/cache/event"
)

type RedisMessage struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

// DecodeMessage resolves the envelope type through event.Registry.
func DecodeMessage(data []byte) (event.Event, error) {
	var msg RedisMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	typ, ok := event.Registry[msg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", msg.Type)
	}
	ptr := reflect.New(typ)
	if err := json.Unmarshal(msg.Event, ptr.Interface()); err != nil {
		return nil, err
	}
	ev, ok := ptr.Elem().Interface().(event.Event)
	if !ok {
		return nil, fmt.Errorf("type %q does not implement event.Event", msg.Type)
	}
	return ev, nil
}
