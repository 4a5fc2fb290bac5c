package lumossdk

import (
	"github.com/lumoswallet/go-sdk/types"
)

type Option func(*accountClient)

// WithRepository makes the client persist every snapshot change to the
// given repository. Persistence is best-effort: failures are logged,
// never surfaced to the mutation caller.
func WithRepository(repo types.AccountRepository) Option {
	return func(c *accountClient) {
		c.repo = repo
	}
}

// WithEventBuffer overrides the buffer size of channels handed out by
// GetEventChannel.
func WithEventBuffer(size int) Option {
	return func(c *accountClient) {
		if size > 0 {
			c.eventBuffer = size
		}
	}
}
