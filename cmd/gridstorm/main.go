// Package main is the entry point for the gridstorm command runner.
//
// It executes a script of JSON commands against an in-memory workbook
// and prints one result document per step. Scripts mix JSON command
// objects with the bare directives undo, redo, and history.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dshills/gridstorm/internal/backend/memory"
	"github.com/dshills/gridstorm/internal/command"
	"github.com/dshills/gridstorm/internal/config"
	"github.com/dshills/gridstorm/internal/engine"
	"github.com/dshills/gridstorm/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		scriptPath  string
		logLevel    string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&scriptPath, "script", "", "Command script to execute; - or empty reads stdin")
	flag.StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Gridstorm - spreadsheet command runner\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gridstorm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nScript lines are JSON command documents or one of: undo, redo, history.\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("gridstorm %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log, closeLog, err := buildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	wb := memory.NewWorkbook("Sheet1")
	eng := engine.New(wb, engine.Options{
		MaxHistory: cfg.History.MaxEntries,
		Logger:     log,
	})

	if configPath != "" {
		w, err := config.Watch(configPath, func(next config.Config) {
			eng.SetMaxHistory(next.History.MaxEntries)
			log.SetLevel(logging.ParseLevel(next.Logging.Level))
			log.Info("configuration reloaded")
		})
		if err != nil {
			log.Warn("config watch disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	in := os.Stdin
	if scriptPath != "" && scriptPath != "-" {
		f, err := os.Open(scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	if err := runScript(eng, time.Duration(cfg.Backend.SyncTimeout), in, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// buildLogger creates the root logger per configuration. The returned
// closer releases the log file, if any.
func buildLogger(cfg config.LoggingConfig) (*logging.Logger, func(), error) {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Level)

	closer := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		lc.Output = f
		closer = func() { f.Close() }
	}
	return logging.New(lc), closer, nil
}

// runScript executes script lines from in, writing one result document
// per step to out. Blank lines and # comments are skipped. Command
// failures are reported in the output stream, not as script errors.
// Each step gets its own timeout-bounded context.
func runScript(eng *engine.Engine, timeout time.Duration, in io.Reader, out io.Writer) error {
	step := func(fn func(ctx context.Context)) {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		fn(ctx)
	}

	buffered := bufio.NewReader(in)

	// A script that is one big JSON array is executed as a batch of
	// command documents with no directives.
	if first, err := buffered.Peek(1); err == nil && first[0] == '[' {
		data, err := io.ReadAll(buffered)
		if err != nil {
			return err
		}
		cmds, err := command.DecodeAll(data)
		if err != nil {
			return err
		}
		for _, cmd := range cmds {
			step(func(ctx context.Context) {
				res := eng.Execute(ctx, cmd)
				fmt.Fprintf(out, "%s\n", res.JSON())
			})
		}
		return nil
	}

	scanner := bufio.NewScanner(buffered)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch line {
		case "undo":
			step(func(ctx context.Context) { printStep(out, "undo", eng.Undo(ctx)) })
		case "redo":
			step(func(ctx context.Context) { printStep(out, "redo", eng.Redo(ctx)) })
		case "history":
			printHistory(out, eng)
		default:
			cmd, err := command.Decode([]byte(line))
			if err != nil {
				fmt.Fprintf(out, "{\"success\":false,\"error\":%q}\n", err.Error())
				continue
			}
			step(func(ctx context.Context) {
				res := eng.Execute(ctx, cmd)
				fmt.Fprintf(out, "%s\n", res.JSON())
			})
		}
	}
	return scanner.Err()
}

func printStep(out io.Writer, what string, err error) {
	if err != nil {
		fmt.Fprintf(out, "{\"success\":false,\"error\":%q}\n", err.Error())
		return
	}
	fmt.Fprintf(out, "{\"success\":true,\"message\":%q}\n", what)
}

func printHistory(out io.Writer, eng *engine.Engine) {
	entries := eng.History()
	fmt.Fprintf(out, "history (%d entries, undo=%t redo=%t):\n",
		len(entries), eng.CanUndo(), eng.CanRedo())
	for i, e := range entries {
		marker := " "
		if e.Current {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %2d  %s  %s\n", marker, i, e.Timestamp.Format("15:04:05"), e.Description)
	}
}
