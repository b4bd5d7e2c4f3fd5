package main

import (
	"io"
	"os"

	"replayview/internal/app"
	"replayview/internal/config"
	"replayview/internal/store"
)

type commandRunner interface {
	Run(args []string) error
}

type configLoader func() (config.Config, error)

type cacheOpener func(cfg config.Config) (store.SessionCache, error)

type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig configLoader
	newClient  clientFactory
	openCache  cacheOpener
	runUI      func(deps app.Dependencies) error
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: config.Load,
		newClient:  newAPIClient,
		openCache:  openSessionCache,
		runUI: func(deps app.Dependencies) error {
			return app.Run(deps)
		},
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":     NewUICommand(wiring.stderr, wiring.loadConfig, wiring.newClient, wiring.openCache, wiring.runUI),
		"show":   NewShowCommand(wiring.stdout, wiring.stderr, wiring.loadConfig, wiring.newClient),
		"star":   NewStarCommand(wiring.stdout, wiring.stderr, wiring.loadConfig, wiring.newClient, wiring.openCache),
		"cache":  NewCacheCommand(wiring.stdout, wiring.stderr, wiring.loadConfig, wiring.openCache),
		"config": NewConfigCommand(wiring.stdout, wiring.stderr, wiring.loadConfig),
	}
}

func openSessionCache(cfg config.Config) (store.SessionCache, error) {
	backend := cfg.CacheBackend()
	if backend == store.CacheBackendMemory {
		return store.OpenSessionCache(backend, "")
	}
	path, err := cfg.ResolveCachePath()
	if err != nil {
		return nil, err
	}
	return store.OpenSessionCache(backend, path)
}
