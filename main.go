package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/atomicstack/popular-movies/internal/app"
	"github.com/atomicstack/popular-movies/internal/config"
	"github.com/atomicstack/popular-movies/internal/logging"
	"github.com/atomicstack/popular-movies/internal/logging/events"
)

func main() {
	os.Exit(run(os.Args[1:], app.Run, os.Stderr))
}

// run executes the root command and maps failures to exit codes: 2 for
// configuration problems, 1 for everything else.
func run(args []string, start func(app.Config) error, stderr io.Writer) int {
	cmd := newRootCommand(args, start)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if config.IsUsageError(err) {
			fmt.Fprintf(stderr, "Configuration error: %v\n", err)
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand(args []string, start func(app.Config) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "popular-movies",
		Short:         "Browse popular and top rated movies in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, extra []string) error {
			if len(extra) > 0 {
				return &config.UsageError{Err: fmt.Errorf("unexpected arguments: %v", extra)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromFlags(cmd.Flags(), args)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			cfg.Apply()
			defer logging.Close()
			traceStartup(cfg)
			if err := start(cfg.App); err != nil {
				logging.Error(err)
				return err
			}
			return nil
		},
	}
	config.BindFlags(cmd.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.UsageError{Err: err}
	})
	return cmd
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging. The API key
// never leaves the process.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	safe := cfg.Redacted()
	flags := make(map[string]interface{}, len(safe.Flags))
	for k, v := range safe.Flags {
		flags[k] = v
	}
	flags["trace"] = safe.Logging.Trace
	flags["logFile"] = safe.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   redactArgs(safe.Args),
		"flags":  flags,
		"config": safe,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

// redactArgs masks the value following --api-key in argv.
func redactArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i, arg := range out {
		switch {
		case arg == "--api-key" && i+1 < len(out):
			out[i+1] = "REDACTED"
		case strings.HasPrefix(arg, "--api-key="):
			out[i] = "--api-key=REDACTED"
		}
	}
	return out
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
