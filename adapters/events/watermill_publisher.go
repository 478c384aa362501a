package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/layer-3/tidbit/ports"
)

// DefaultTopic carries client auth events
const DefaultTopic = "tidbit.auth"

// Event kinds
const (
	KindLogin          = "login"
	KindLogout         = "logout"
	KindSessionExpired = "session_expired"
)

// AuthEvent is the payload of every published message.
// The session token itself is never published.
type AuthEvent struct {
	Kind    string    `json:"kind"`
	Address string    `json:"address,omitempty"`
	Path    string    `json:"path,omitempty"`
	At      time.Time `json:"at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
	now       func() time.Time
}

// NewWatermillPublisher creates a publisher for topic; an empty topic uses DefaultTopic
func NewWatermillPublisher(publisher message.Publisher, topic string) *WatermillPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &WatermillPublisher{
		publisher: publisher,
		topic:     topic,
		now:       time.Now,
	}
}

var _ ports.EventPublisher = (*WatermillPublisher)(nil)

// PublishLogin publishes a successful login for address
func (p *WatermillPublisher) PublishLogin(ctx context.Context, address string) error {
	return p.publish(ctx, AuthEvent{Kind: KindLogin, Address: address})
}

// PublishLogout publishes an explicit logout
func (p *WatermillPublisher) PublishLogout(ctx context.Context) error {
	return p.publish(ctx, AuthEvent{Kind: KindLogout})
}

// PublishSessionExpired publishes a server-side rejection seen on path
func (p *WatermillPublisher) PublishSessionExpired(ctx context.Context, path string) error {
	return p.publish(ctx, AuthEvent{Kind: KindSessionExpired, Path: path})
}

func (p *WatermillPublisher) publish(ctx context.Context, event AuthEvent) error {
	event.At = p.now().UTC()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("kind", event.Kind)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Nop drops every event
type Nop struct{}

var _ ports.EventPublisher = Nop{}

func (Nop) PublishLogin(context.Context, string) error { return nil }
func (Nop) PublishLogout(context.Context) error { return nil }
func (Nop) PublishSessionExpired(context.Context, string) error { return nil }
