package events

import "context"

// Event types emitted by the intake service
const (
	TypeSessionStarted  = "intake.session.started"
	TypeRecordUpdated   = "intake.record.updated"
	TypeRecordSubmitted = "intake.record.submitted"
)

// Publisher is the subset of the bus the intake service depends on. The
// service degrades gracefully when no publisher is configured.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
	Health() error
}

// Ensure Bus implements Publisher
var _ Publisher = (*Bus)(nil)
