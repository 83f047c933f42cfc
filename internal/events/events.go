// Package events carries domain events over an in-process watermill pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
)

// Topics
const (
	TopicApplicationStatusChanged = "application.status_changed"
)

const (
	eventSource  = "futureintern-api"
	eventVersion = "1.0"
)

// Event is the envelope every message carries
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// ApplicationStatusChanged is published when a company or admin moves an application
type ApplicationStatusChanged struct {
	ApplicationID int64  `json:"application_id"`
	StudentID     int64  `json:"student_id"`
	InternshipID  int64  `json:"internship_id"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	ChangedBy     int64  `json:"changed_by"`
}

// Publisher publishes domain events
type Publisher interface {
	PublishApplicationStatusChanged(ctx context.Context, evt ApplicationStatusChanged) error
}

// Bus is a watermill gochannel pub/sub
type Bus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
}

// NewBus creates an in-process bus
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewStdLogger(false, false)),
		logger: logger,
	}
}

// PublishApplicationStatusChanged implements Publisher
func (b *Bus) PublishApplicationStatusChanged(ctx context.Context, evt ApplicationStatusChanged) error {
	return b.publish(ctx, TopicApplicationStatusChanged, evt)
}

func (b *Bus) publish(ctx context.Context, topic string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", topic, err)
	}

	envelope := Event{
		ID:        watermill.NewUUID(),
		Type:      topic,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", topic, err)
	}

	msg := message.NewMessage(envelope.ID, payload)
	msg.SetContext(ctx)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", topic, err)
	}

	b.logger.Debug().Str("topic", topic).Str("eventID", envelope.ID).Msg("Event published")
	return nil
}

// HandleApplicationStatusChanged runs handler for every status change until ctx is done.
// Messages are acked even when the handler fails; the failure is logged.
func (b *Bus) HandleApplicationStatusChanged(ctx context.Context, handler func(context.Context, ApplicationStatusChanged) error) error {
	messages, err := b.pubsub.Subscribe(ctx, TopicApplicationStatusChanged)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", TopicApplicationStatusChanged, err)
	}

	go func() {
		for msg := range messages {
			var envelope Event
			var evt ApplicationStatusChanged
			decodeErr := json.Unmarshal(msg.Payload, &envelope)
			if decodeErr == nil {
				decodeErr = json.Unmarshal(envelope.Data, &evt)
			}
			if decodeErr != nil {
				b.logger.Error().Err(decodeErr).Str("messageID", msg.UUID).Msg("Dropping malformed event")
				msg.Ack()
				continue
			}

			if err := handler(ctx, evt); err != nil {
				b.logger.Error().Err(err).
					Int64("applicationID", evt.ApplicationID).
					Str("status", evt.NewStatus).
					Msg("Status change handler failed")
			}
			msg.Ack()
		}
	}()
	return nil
}

// Close stops the bus and closes all subscriber channels
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
