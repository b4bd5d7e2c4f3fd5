package main

import (
	"flag"
	"io"

	"replayview/internal/app"
	"replayview/internal/config"
	"replayview/internal/logging"
	"replayview/internal/metadata"
	"replayview/internal/star"
)

type UICommand struct {
	stderr     io.Writer
	loadConfig configLoader
	newClient  clientFactory
	openCache  cacheOpener
	runUI      func(deps app.Dependencies) error
	openLog    func(cfg config.Config) (logging.Logger, io.Closer)
}

func NewUICommand(stderr io.Writer, loadConfig configLoader, newClient clientFactory, openCache cacheOpener, runUI func(deps app.Dependencies) error) *UICommand {
	return &UICommand{
		stderr:     stderr,
		loadConfig: loadConfig,
		newClient:  newClient,
		openCache:  openCache,
		runUI:      runUI,
		openLog:    openUILog,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
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
	logger, closer := c.openLog(cfg)
	if closer != nil {
		defer closer.Close()
	}
	logger = logger.With(logging.F("session", id))

	loc, err := cfg.TimeLocation()
	if err != nil {
		logger.Warn("invalid time zone, using local", logging.F("err", err))
		loc = nil
	}
	if tag, ok := cfg.DisplayLocale(); !ok {
		logger.Warn("invalid display locale, using default", logging.F("locale", tag.String()))
	}

	api, err := c.newClient(cfg, logger)
	if err != nil {
		return err
	}
	cache, err := c.openCache(cfg)
	if err != nil {
		return err
	}
	defer cache.Close()
	logger.Info("ui starting", logging.F("cache", cache.Backend()), logging.F("logged_in", api.HasToken()))

	toggler := star.New(cache, api,
		star.WithRollback(cfg.StarRollbackOnFailure()),
		star.WithLogger(logger),
	)
	return c.runUI(app.Dependencies{
		SessionID: id,
		Sessions:  api,
		Viewer:    viewerAdapter{client: api, adminDomains: cfg.AdminEmailDomains()},
		Star:      toggler,
		Links: metadata.LinkOptions{
			BaseURL:   cfg.AppBaseURL(),
			ProjectID: cfg.ProjectID(),
		},
		Location:       loc,
		PollInterval:   cfg.PollInterval(),
		RequestTimeout: cfg.APITimeout(),
		Logger:         logger,
	})
}

// openUILog falls back to a discarding logger when the log file cannot be
// opened; the terminal renderer owns stdout and stderr.
func openUILog(cfg config.Config) (logging.Logger, io.Closer) {
	path, err := config.UILogPath()
	if err != nil {
		return logging.Nop(), nil
	}
	logger, closer, err := logging.OpenFile(path, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return logging.Nop(), nil
	}
	return logger, closer
}
