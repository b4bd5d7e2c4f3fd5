package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"replayview/internal/metadata"
	"replayview/internal/types"
)

// CacheCommand lists or evicts entries of the local session cache.
type CacheCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig configLoader
	openCache  cacheOpener
}

func NewCacheCommand(stdout, stderr io.Writer, loadConfig configLoader, openCache cacheOpener) *CacheCommand {
	return &CacheCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		openCache:  openCache,
	}
}

func (c *CacheCommand) Run(args []string) error {
	fs := flag.NewFlagSet("cache", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var evict stringList
	fs.Var(&evict, "delete", "secure id to evict (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cache, err := c.openCache(cfg)
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx := context.Background()
	if len(evict) > 0 {
		for _, id := range evict {
			if err := cache.Delete(ctx, id); err != nil {
				return fmt.Errorf("delete %s: %w", id, err)
			}
			fmt.Fprintf(c.stdout, "deleted %s\n", strings.TrimSpace(id))
		}
		return nil
	}

	sessions, err := cache.List(ctx)
	if err != nil {
		return err
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Key() < sessions[j].Key() })
	printCachedSessions(c.stdout, sessions)
	return nil
}

func printCachedSessions(output io.Writer, sessions []*types.Session) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "SECURE ID\tSTARRED\tCREATED\tIDENTITY")
	for _, session := range sessions {
		starred := "-"
		if session.Starred {
			starred = "yes"
		}
		created := "-"
		if !session.CreatedAt.IsZero() {
			created = session.CreatedAt.UTC().Format("2006-01-02 15:04")
		}
		identity := lineSanitizer.Sanitize(metadata.DisplayIdentifier(session))
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", session.Key(), starred, created, identity)
	}
	_ = writer.Flush()
}
