package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"replayview/internal/client"
	"replayview/internal/logging"
	"replayview/internal/star"
	"replayview/internal/types"
)

type StarCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig configLoader
	newClient  clientFactory
	openCache  cacheOpener
}

func NewStarCommand(stdout, stderr io.Writer, loadConfig configLoader, newClient clientFactory, openCache cacheOpener) *StarCommand {
	return &StarCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		newClient:  newClient,
		openCache:  openCache,
	}
}

func (c *StarCommand) Run(args []string) error {
	fs := flag.NewFlagSet("star", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	sessionID := fs.String("session", "", "secure id of the session to star")
	off := fs.Bool("off", false, "unstar the session")
	toggle := fs.Bool("toggle", false, "flip the current starred state")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *off && *toggle {
		return errors.New("--off and --toggle are mutually exclusive")
	}
	id, err := sessionIDArg(*sessionID, fs.Args())
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	api, err := c.newClient(cfg, logging.Nop())
	if err != nil {
		return err
	}
	if !api.HasToken() {
		return client.ErrNotLoggedIn
	}
	cache, err := c.openCache(cfg)
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.APITimeout())
	defer cancel()
	fetched, err := api.GetSession(ctx, id)
	if err != nil {
		return err
	}
	toggler := star.New(cache, api, star.WithRollback(cfg.StarRollbackOnFailure()))
	stored, err := toggler.Store(ctx, fetched)
	if err != nil {
		return err
	}

	var req star.Request
	if *toggle {
		req, _, err = toggler.Begin(ctx, stored.Key())
	} else {
		req, _, err = toggler.BeginSet(ctx, stored.Key(), !*off)
	}
	if err != nil {
		return err
	}
	outcome := toggler.Send(ctx, req)
	if outcome.Err != nil {
		return fmt.Errorf("%s: %w", outcome.Notice.Text, outcome.Err)
	}
	fmt.Fprintf(c.stdout, "%s %s\n", starredLabel(outcome.Session), outcome.Request.SessionID)
	return nil
}

func starredLabel(session *types.Session) string {
	if session != nil && session.Starred {
		return "starred"
	}
	return "unstarred"
}
