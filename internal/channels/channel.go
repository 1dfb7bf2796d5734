// Package channels contains the transport adapters between chat platforms
// and the message bus.
package channels

import (
	"context"

	"github.com/huntdesk/huntdesk/internal/bus"
)

// Channel defines the interface for chat transports.
type Channel interface {
	// Name returns the channel name (e.g. "telegram").
	Name() string
	// Start starts the channel listener.
	Start(ctx context.Context) error
	// Stop stops the channel listener.
	Stop() error
	// Send performs one outbound command.
	Send(ctx context.Context, msg *bus.OutboundMessage) error
}

// BaseChannel provides common functionality for channels.
type BaseChannel struct {
	Bus *bus.MessageBus
}
