package app

import (
	"context"

	"replayview/internal/types"
)

type SessionSource interface {
	GetSession(ctx context.Context, secureID string) (*types.Session, error)
}

// ViewerSource resolves who is looking at the page. A logged out viewer is a
// normal result, not an error.
type ViewerSource interface {
	GetViewer(ctx context.Context) (types.Viewer, error)
}
