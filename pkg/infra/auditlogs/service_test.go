package auditlogs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	messages    []*kafka.Message
	produceErr  error
	deliveryErr error
	closed      bool
}

func (p *fakeProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	if p.produceErr != nil {
		return p.produceErr
	}
	p.messages = append(p.messages, msg)
	delivered := *msg
	delivered.TopicPartition.Error = p.deliveryErr
	deliveryChan <- &delivered
	return nil
}

func (p *fakeProducer) Flush(int) int { return 0 }

func (p *fakeProducer) Close() { p.closed = true }

type recordingSink struct {
	events []Event
	err    error
}

func (s *recordingSink) Write(_ context.Context, event Event) error {
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) Close() {}

func postEvent(id string) Event {
	return Event{
		Event:  EventInfo{Type: EventTypePostModerated, Category: CategoryContentModeration, Status: StatusSuccess},
		Target: Target{Type: TargetTypePost, ID: id},
		Moderation: &ModerationDetails{
			Action:     "block",
			RiskScore:  80,
			Categories: []string{"violence"},
		},
	}
}

func TestKafkaSink_WriteUsesContentIDAsKey(t *testing.T) {
	p := &fakeProducer{}
	sink := newKafkaSink("moderation-audit", p)

	err := sink.Write(context.Background(), postEvent("post-42"))
	require.NoError(t, err)
	require.Len(t, p.messages, 1)

	msg := p.messages[0]
	assert.Equal(t, "post-42", string(msg.Key))
	assert.Equal(t, "moderation-audit", *msg.TopicPartition.Topic)
	assert.Equal(t, "event_type", msg.Headers[0].Key)

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "post-42", decoded.Target.ID)
	assert.Equal(t, 80, decoded.Moderation.RiskScore)

	sink.Close()
	assert.True(t, p.closed)
}

func TestKafkaSink_WriteErrors(t *testing.T) {
	sink := newKafkaSink("audit", &fakeProducer{produceErr: errors.New("queue full")})
	assert.ErrorContains(t, sink.Write(context.Background(), postEvent("p")), "queue full")

	sink = newKafkaSink("audit", &fakeProducer{deliveryErr: kafka.NewError(kafka.ErrMsgTimedOut, "timed out", false)})
	assert.ErrorContains(t, sink.Write(context.Background(), postEvent("p")), "delivery failed")
}

func TestService_Emit(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sink := &recordingSink{}
	svc := NewService(sink, logger, true)

	svc.Emit(context.Background(), postEvent("post-1"))

	require.Len(t, sink.events, 1)
	assert.False(t, sink.events[0].Timestamp.IsZero())
	assert.Equal(t, ActorTypeSystem, sink.events[0].Actor.Type)
	assert.Empty(t, hook.AllEntries())
}

func TestService_EmitFailureIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	svc := NewService(&recordingSink{err: errors.New("broker down")}, logger, true)

	svc.Emit(context.Background(), postEvent("post-1"))

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "post-1", hook.LastEntry().Data["target_id"])
}

func TestService_Disabled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sink := &recordingSink{}
	svc := NewService(sink, logger, false)

	svc.Emit(context.Background(), postEvent("post-1"))
	assert.Empty(t, sink.events)
	assert.NoError(t, svc.Close())
}

func TestDecodeConfig(t *testing.T) {
	conf, err := DecodeConfig(map[string]interface{}{
		"enabled": true, "host": "kafka", "port": "9092", "topic": "moderation-audit",
	})
	require.NoError(t, err)
	assert.Equal(t, "moderation-audit", conf.Topic)

	_, err = DecodeConfig(map[string]interface{}{"enabled": true, "host": "kafka"})
	assert.Error(t, err)

	conf, err = DecodeConfig(map[string]interface{}{"enabled": false})
	require.NoError(t, err)
	assert.False(t, conf.Enabled)
}
