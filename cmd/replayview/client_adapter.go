package main

import (
	"context"

	"replayview/internal/client"
	"replayview/internal/config"
	"replayview/internal/logging"
	"replayview/internal/types"
)

type clientFactory func(cfg config.Config, logger logging.Logger) (commandClient, error)

type commandClient interface {
	HasToken() bool
	GetSession(ctx context.Context, secureID string) (*types.Session, error)
	MarkSessionAsStarred(ctx context.Context, secureID string, starred bool) (*types.Session, error)
	GetViewer(ctx context.Context, adminDomains []string) (types.Viewer, error)
}

func newAPIClient(cfg config.Config, logger logging.Logger) (commandClient, error) {
	tokenPath, err := cfg.ResolveTokenPath()
	if err != nil {
		return nil, err
	}
	api, err := client.New(client.Options{
		Endpoint:  cfg.APIURL(),
		TokenPath: tokenPath,
		Timeout:   cfg.APITimeout(),
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	return api, nil
}

// viewerAdapter binds the configured admin domains so the UI only has to ask
// who is looking.
type viewerAdapter struct {
	client       commandClient
	adminDomains []string
}

func (v viewerAdapter) GetViewer(ctx context.Context) (types.Viewer, error) {
	return v.client.GetViewer(ctx, v.adminDomains)
}
