package handlers

import (
	"context"
	"time"
)

// dbCtx bounds every database call; Fiber's request context is not a Go
// context, so handlers derive their own.
func dbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
