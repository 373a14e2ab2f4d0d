package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/assetnav/internal/app"
	"github.com/atomicstack/assetnav/internal/config"
	"github.com/atomicstack/assetnav/internal/logging"
	"github.com/atomicstack/assetnav/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// configError marks failures that happen before the UI starts because of
// bad flags, environment or config file.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }

func (e *configError) Unwrap() error { return e.err }

func main() {
	os.Exit(execute(os.Args[1:], os.Environ()))
}

func execute(args, environ []string) int {
	cmd := newRootCmd(args, environ, app.Run)
	cmd.SetArgs(args)
	err := cmd.Execute()
	logging.Sync()
	if err == nil {
		return 0
	}
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func newRootCmd(args, environ []string, run func(app.Config) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "assetnav",
		Short:         "Browse and transfer assets through the pcli2 tool",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	flags := config.Register(cmd.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &configError{err: err}
	})
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		runtimeCfg, err := flags.Resolve(args, environ)
		if err != nil {
			return &configError{err: err}
		}
		if err := config.Validate(runtimeCfg); err != nil {
			return &configError{err: err}
		}
		logging.Configure(runtimeCfg.Logging.FilePath)
		logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

		traceStartup(runtimeCfg)

		err = run(runtimeCfg.App)
		events.App.Stop(err)
		if err != nil {
			logging.Error(err)
			return err
		}
		return nil
	}
	return cmd
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
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

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Checks   []ttyCheckResult `json:"checks"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyCheckResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports which standard descriptors are terminals and their size.
func collectTTYDetails() ttyDetails {
	checks := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	results := make([]ttyCheckResult, 0, len(checks))
	var detected *ttyDetected
	for _, check := range checks {
		entry := ttyCheckResult{Name: check.name}
		fd := int(check.file.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			width, height, err := term.GetSize(fd)
			if err != nil {
				entry.Error = err.Error()
			} else {
				entry.Width, entry.Height = width, height
				if detected == nil {
					detected = &ttyDetected{Source: check.name, Width: width, Height: height}
				}
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Checks: results}
}
