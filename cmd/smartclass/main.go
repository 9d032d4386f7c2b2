package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/suguru-ai/smartclass/internal/platform/config"
	"github.com/suguru-ai/smartclass/internal/platform/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "smartclass %s\n", Version)
		return 0
	}
	if !isCommand(args[0]) {
		return unknownCommand(stderr, args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	slog.SetDefault(logging.New(stderr, cfg.Log.Level, cfg.Log.Format))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	a, err := newApp(ctx, cfg, stdin, stdout)
	if err != nil {
		slog.Error("failed to start", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer a.Close()

	if err := a.dispatch(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			return unknownCommand(stderr, args[0])
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func unknownCommand(w io.Writer, name string) int {
	fmt.Fprintf(w, "Unknown command: %s\n\n", name)
	printUsage(w)
	return 1
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `SmartClass - offline lessons, quizzes and coding practice

Usage:
  smartclass <command> [arguments]

Browse Commands:
  grades                              List grades
  subjects <grade>                    List subjects
  topics <grade>/<subject>            List topics and lessons of a subject

Learning Commands:
  learn <grade>/<subject>/<topic>/<subtopic>
                                      Run a lesson with quizzes
  code <grade>/<topic>/<lesson> [file] [--input=value]
                                      Show a Python lesson and simulate code
  map [country]                       Explore the map of Africa

Progress Commands:
  progress                            Show xp, level, streak, badges, achievements
  export <file.xlsx>                  Export progress to a workbook
  reset                               Delete all progress

Other:
  help                                Show this help message
  version                             Show version information

Environment:
  LEARN_STORE_BACKEND   memory | file | sqlite | redis | postgres (default file)
  LEARN_CONTENT_PATH    directory of YAML content overriding the built-in catalog
  LEARN_TIMEZONE        timezone for daily streaks (default Local)
  LEARN_LOCALE          number formatting locale (default en)

Examples:
  smartclass topics primary1/mathematics
  smartclass learn primary1/mathematics/math-numbers/counting
  smartclass code primary1/code-basics/variables hello.py
  smartclass map ng`)
}
