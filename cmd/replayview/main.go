package main

import (
	"fmt"
	"os"
)

const usageText = `replayview shows the metadata of a recorded session.

Usage:
  replayview <command> [flags]

Commands:
  ui       run the terminal metadata sidebar
  show     print session metadata and exit
  star     star or unstar a session
  cache    list or evict locally cached sessions
  config   print configuration (effective or defaults)
  help     show help

Flags:
  -h, --help   show help

Examples:
  replayview ui --session 2Lq8fZ
  replayview show --session 2Lq8fZ
  replayview star --session 2Lq8fZ --off
  replayview cache --delete 2Lq8fZ
  replayview config --format toml
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
