package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"replayview/internal/app/sanitizer"
	"replayview/internal/metadata"
)

var lineSanitizer = sanitizer.SingleLine()

var errSessionRequired = errors.New("--session is required")

func printRows(output io.Writer, title string, rows []metadata.Row) {
	fmt.Fprintln(output, strings.ToUpper(title))
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	for _, row := range rows {
		value := lineSanitizer.Sanitize(row.Value)
		if row.Render == metadata.RenderLink && row.Link != "" {
			value += " (" + row.Link + ")"
		}
		fmt.Fprintf(writer, "  %s\t%s\n", lineSanitizer.Sanitize(row.Key), value)
	}
	_ = writer.Flush()
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func sessionIDArg(flagValue string, rest []string) (string, error) {
	id := strings.TrimSpace(flagValue)
	if id == "" && len(rest) > 0 {
		id = strings.TrimSpace(rest[0])
	}
	if id == "" {
		return "", errSessionRequired
	}
	return id, nil
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}
