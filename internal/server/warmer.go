package server

import (
	"context"

	"github.com/preston-bernstein/f1-dashboard/internal/warmer"
)

// Warmer defines the minimal cache warmer behavior needed by the server.
type Warmer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status() warmer.Status
}
