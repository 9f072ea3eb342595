// Package delivery defines the contract every transport-facing server of
// the service fulfils.
package delivery

import "context"

// Delivery is a long-running server started by the application entry point.
type Delivery interface {
	Serve(ctx context.Context) error
}
