package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"replayview/internal/config"
	"replayview/internal/logging"
	"replayview/internal/metadata"
	"replayview/internal/types"
)

type ShowCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig configLoader
	newClient  clientFactory
}

func NewShowCommand(stdout, stderr io.Writer, loadConfig configLoader, newClient clientFactory) *ShowCommand {
	return &ShowCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		newClient:  newClient,
	}
}

func (c *ShowCommand) Run(args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	sessionID := fs.String("session", "", "secure id of the session to show")
	if err := fs.Parse(args); err != nil {
		return err
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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.APITimeout())
	defer cancel()
	session, err := api.GetSession(ctx, id)
	if err != nil {
		return err
	}
	viewer, err := api.GetViewer(ctx, cfg.AdminEmailDomains())
	if err != nil {
		return err
	}
	loc, err := cfg.TimeLocation()
	if err != nil {
		loc = nil
	}

	printSessionSummary(c.stdout, session, viewer, cfg, loc)
	return nil
}

func printSessionSummary(out io.Writer, session *types.Session, viewer types.Viewer, cfg config.Config, loc *time.Location) {
	title := lineSanitizer.Sanitize(metadata.DisplayIdentifier(session))
	if viewer.LoggedIn && session.Starred {
		title += " ★"
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, metadata.CreatedDate(session.CreatedAt, loc))
	fmt.Fprintln(out, metadata.CreatedTime(session.CreatedAt, loc))
	if browser, ok := metadata.BrowserSummary(session); ok {
		fmt.Fprintln(out, lineSanitizer.Sanitize(browser))
	}

	panel := metadata.BuildPanel(session, viewer, metadata.FilterUserFields(session.Fields), metadata.LinkOptions{
		BaseURL:   cfg.AppBaseURL(),
		ProjectID: cfg.ProjectID(),
	})
	for _, section := range []struct {
		title string
		rows  []metadata.Row
	}{
		{"Session", panel.Session},
		{"User", panel.User},
		{"Device", panel.Device},
	} {
		fmt.Fprintln(out)
		printRows(out, section.title, section.rows)
	}
}
