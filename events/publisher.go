// Package events publishes domain events after their transaction committed.
// Publishing is fire-and-forget: failures are logged and never reach the
// request that produced the event.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const (
	CheckInRecorded       = "checkin.recorded"
	PointsAwarded         = "loyalty.points_awarded"
	PointsDeducted        = "loyalty.points_deducted"
	SessionBooked         = "training.session_booked"
	SessionStatusChanged  = "training.session_status_changed"
	FacilityBooked        = "facility.booked"
	SubscriptionRequested = "subscription.requested"
	SubscriptionApproved  = "subscription.approved"
	MemberRegistered      = "member.registered"
)

// Event is the envelope written to the topic. Payload is the event-specific body.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	UserID     uint        `json:"user_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType string, userID uint, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event)
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
func (NopPublisher) Close() error                   { return nil }

// KafkaPublisher writes events keyed by user id so a member's events stay ordered.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds an async writer for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		Async:                  true,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error().Err(err).Int("messages", len(messages)).Msg("kafka publish failed")
			}
		},
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) {
	body, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Str("event", evt.Type).Msg("marshal event")
		return
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(evt.UserID), 10)),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(evt.Type)},
		},
	}
	// Async writer: WriteMessages only enqueues; delivery errors land in Completion.
	if err := p.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		log.Error().Err(err).Str("event", evt.Type).Msg("enqueue event")
	}
}

func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}

// MemoryPublisher keeps events in memory. Useful in tests and local runs.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, evt Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *MemoryPublisher) Close() error { return nil }

// Events returns a copy of everything published so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// OfType filters Events by type.
func (p *MemoryPublisher) OfType(eventType string) []Event {
	var out []Event
	for _, e := range p.Events() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
