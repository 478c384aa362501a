package ports

import "context"

// EventPublisher notifies other components about client auth state changes
type EventPublisher interface {
	PublishLogin(ctx context.Context, address string) error
	PublishLogout(ctx context.Context) error
	PublishSessionExpired(ctx context.Context, path string) error
}
