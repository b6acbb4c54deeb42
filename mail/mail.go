// Package mail provides outbound email delivery. The sender is an explicitly
// constructed collaborator built once at startup and injected into the
// handlers that need it; there is no ambient package-level client.
package mail

import "context"

// Sender delivers transactional email. Implementations must be safe for
// concurrent use.
type Sender interface {
	// SendPasswordReset sends a password-reset email to the given address.
	SendPasswordReset(ctx context.Context, to string) error
}
