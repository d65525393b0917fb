package auditlogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/mitchellh/mapstructure"
)

type Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Topic   string `mapstructure:"topic"`
}

func DecodeConfig(settings map[string]interface{}) (Config, error) {
	var conf Config
	if err := mapstructure.Decode(settings, &conf); err != nil {
		return Config{}, fmt.Errorf("invalid kafka config: %w", err)
	}
	if !conf.Enabled {
		return conf, nil
	}
	if conf.Host == "" {
		return Config{}, errors.New("kafka host is required")
	}
	if conf.Port == "" {
		return Config{}, errors.New("kafka port is required")
	}
	if conf.Topic == "" {
		return Config{}, errors.New("kafka topic is required")
	}
	return conf, nil
}

// producer is the subset of *kafka.Producer the sink needs.
type producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Close()
}

type Sink interface {
	Write(ctx context.Context, event Event) error
	Close()
}

type kafkaSink struct {
	topic    string
	producer producer
}

func NewKafkaSink(conf Config) (Sink, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": fmt.Sprintf("%s:%s", conf.Host, conf.Port),
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return newKafkaSink(conf.Topic, p), nil
}

func newKafkaSink(topic string, p producer) *kafkaSink {
	return &kafkaSink{topic: topic, producer: p}
}

func (s *kafkaSink) Write(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	err = s.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &s.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.PartitionKey()),
		Value:          data,
		Headers:        []kafka.Header{{Key: "event_type", Value: []byte(event.Event.Type)}},
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	select {
	case e := <-deliveryChan:
		m, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event %T", e)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("delivery failed: %w", m.TopicPartition.Error)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *kafkaSink) Close() {
	s.producer.Flush(5000)
	s.producer.Close()
}
