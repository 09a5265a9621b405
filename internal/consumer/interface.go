// Package consumer ingests platform events that affect search freshness.
package consumer

import "context"

// ProfileUpdatedEvent is published when a member edits their profile or
// avatar. Search drops its cached copy so the next resolution reloads.
type ProfileUpdatedEvent struct {
	UserID    string `json:"user_id"`
	UpdatedAt int64  `json:"updated_at"`
}

// ProfileUpdatedHandler processes profile-updated events.
type ProfileUpdatedHandler interface {
	HandleProfileUpdated(ctx context.Context, event *ProfileUpdatedEvent) error
}

// ProfileUpdatedConsumer consumes profile-updated events from the bus.
type ProfileUpdatedConsumer interface {
	Start(ctx context.Context) error
	Close() error
}
