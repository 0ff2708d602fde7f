// Package main replays recorded transform gesture logs against a
// scene and reports the resulting operations.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dshills/vecstorm/internal/app"
	"github.com/dshills/vecstorm/internal/transform"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, scenePath, logPath := parseFlags()

	engine, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer engine.Close()

	logger := engine.Logger()

	if scenePath != "" {
		n, err := loadScene(engine.Document(), scenePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading scene: %v\n", err)
			return 1
		}
		logger.Info("loaded %d entities from %s", n, scenePath)
	}

	entries, err := loadEntries(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading gesture log: %v\n", err)
		return 1
	}
	logger.Info("replaying %d log entries from %s", len(entries), logPath)

	res, err := engine.Replay(entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: replay failed: %v\n", err)
		return 1
	}

	printResult(logger, res)
	stats := engine.TransformStats()
	logger.Info("last update %s, %d snap candidates, %d hits",
		stats.LastUpdate, stats.LastSnapCandidates, stats.LastSnapHits)
	return 0
}

// loadEntries decodes a recorded gesture log.
func loadEntries(path string) ([]transform.LogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []transform.LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return entries, nil
}

// printResult logs the committed operations, one line per entity.
func printResult(logger *app.Logger, res transform.CommitResult) {
	if res.GestureID == "" {
		logger.Info("replay ended without a committed gesture")
		return
	}
	logger.Info("gesture %s committed %d operations", res.GestureID, len(res.IDs))
	for i, id := range res.IDs {
		p := res.Payloads[i*4 : i*4+4]
		logger.WithField("entity", id).Info("%s [%g %g %g %g]",
			res.OpCodes[i], p[0], p[1], p[2], p[3])
	}
}

func parseFlags() (app.Options, string, string) {
	var opts app.Options
	var scenePath string
	var logPath string
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&scenePath, "scene", "", "Scene JSON file to load before replay")
	flag.StringVar(&scenePath, "s", "", "Scene JSON file (shorthand)")
	flag.StringVar(&logPath, "log", "", "Gesture log JSON file to replay")
	flag.StringVar(&logPath, "l", "", "Gesture log JSON file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Vecstorm - transform gesture replay\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vecstorm -log gestures.json [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vecstorm -s scene.json -l gestures.json\n")
		fmt.Fprintf(os.Stderr, "  vecstorm -c vecstorm.toml -l gestures.json -log-level debug\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Vecstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if logPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts, scenePath, logPath
}
