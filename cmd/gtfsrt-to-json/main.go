package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	lib "github.com/theoremus-urban-solutions/gtfsrt-to-json"
	"github.com/theoremus-urban-solutions/gtfsrt-to-json/config"
)

// Build variables - set by ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

// exitError carries the process exit status out of cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return lib.ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// flag and argument errors from cobra itself
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return lib.ExitInternal
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath  string
		feedName    string
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:   "gtfsrt-to-json",
		Short: "Fetch a GTFS-Realtime feed and save it as JSON",
		Long: "Fetches one GTFS-Realtime protobuf feed, decodes it and writes the JSON\n" +
			"rendering to stdout and to the configured output file.\n\n" +
			"Environment overrides: GTFSRT_JSON_URL, GTFSRT_JSON_OUTPUT,\n" +
			"GTFSRT_JSON_TIMEOUT_MS, GTFSRT_JSON_LOG_LEVEL.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(stdout, "gtfsrt-to-json %s (%s)\n", version, commit)
				return nil
			}

			cfg, err := config.Load(configPath, feedName)
			if err != nil {
				fmt.Fprintf(stderr, "Error loading config: %v\n", err)
				return &exitError{code: lib.ExitInternal, err: err}
			}

			logger, err := lib.InitLogging(stderr, cfg.Log.Level)
			if err != nil {
				fmt.Fprintf(stderr, "Error loading config: %v\n", err)
				return &exitError{code: lib.ExitInternal, err: err}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("fetching feed", "url", cfg.URL, "feed", cfg.FeedName, "config", cfg.Source)
			res, err := lib.NewFromConfig(cfg, stdout, logger).Run(ctx)
			if err != nil {
				logger.Error("run failed", "kind", string(lib.KindOf(err)))
				fmt.Fprintln(stderr, lib.Describe(err))
				return &exitError{code: lib.ExitCode(err), err: err}
			}

			logger.Info("GTFS JSON data has been saved", "path", cfg.Output, "bytes", len(res.Output))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default is ./config.yml if present)")
	cmd.Flags().StringVar(&feedName, "feed", "", "feed name from config feeds[]")
	cmd.Flags().BoolVar(&showVersion, "version", false, "print version information")
	return cmd
}
