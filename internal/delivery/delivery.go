// Package delivery holds the servers the binaries run.
package delivery

import "context"

// Delivery is a long-running server. Serve blocks until the server stops;
// shutdown is driven by fx lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
