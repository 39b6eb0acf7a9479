// Package delivery defines the contract shared by every transport surface
// (public HTTP, admin API, worker).
package delivery

import "context"

// Delivery is a long-running transport server. Serve blocks until the server
// stops; shutdown is handled through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
