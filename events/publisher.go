// Package events publishes successful forecast fetches to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"weather-dashboard/cache"
	"weather-dashboard/dashboard"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is the part of a Kafka client the publisher needs
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Publisher writes records to a single topic
type Publisher struct {
	topic   string
	client  Producer
	timeout time.Duration
}

// NewPublisher connects a Kafka producer to brokers
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("no Kafka brokers configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("Kafka producer initialized for topic: %s", topic)
	return NewPublisherWithProducer(client, topic), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(client Producer, topic string) *Publisher {
	return &Publisher{
		topic:   topic,
		client:  client,
		timeout: 10 * time.Second,
	}
}

// Publish writes a single record and waits for the broker to acknowledge it
func (p *Publisher) Publish(ctx context.Context, key, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rec := &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}

	log.Printf("Published to %s: key=%s", p.topic, string(key))
	return nil
}

// PublishObjectAsync marshals obj as JSON and publishes it in the background
func (p *Publisher) PublishObjectAsync(key []byte, obj interface{}) {
	value, err := json.Marshal(obj)
	if err != nil {
		log.Printf("Failed to marshal object for Kafka: %v", err)
		return
	}

	go func() {
		if err := p.Publish(context.Background(), key, value); err != nil {
			log.Printf("Kafka async publish error: %v", err)
		}
	}()
}

// Close releases the underlying client
func (p *Publisher) Close() {
	p.client.Close()
}

// ObjectPublisher is satisfied by *Publisher
type ObjectPublisher interface {
	PublishObjectAsync(key []byte, obj interface{})
}

// Subscriber returns a store subscriber that publishes the provider
// response of every successful fetch, keyed by its cache key.
func Subscriber(pub ObjectPublisher) func(dashboard.Snapshot) {
	return func(snap dashboard.Snapshot) {
		if snap.Status != dashboard.StatusSuccess || snap.Response == nil {
			return
		}
		pub.PublishObjectAsync([]byte(cache.Key(snap.Location)), snap.Response)
	}
}
