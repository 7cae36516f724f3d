package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vidq/internal/config"
	"vidq/internal/engine"
	"vidq/internal/links"
	"vidq/internal/logging"
	"vidq/internal/playlist"
	"vidq/internal/report"
	"vidq/internal/services"
	"vidq/internal/workflow"
)

type runOptions struct {
	file        string
	urls        []string
	output      string
	fragments   int
	retries     int
	proxy       string
	noProxy     bool
	jsonSummary bool
}

func bindRunCommand(cmd *cobra.Command, ctx *commandContext) {
	var opts runOptions

	cmd.Args = cobra.ArbitraryArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runDownloads(cmd, ctx, &opts, args)
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "File with one URL per line (# starts a comment)")
	flags.StringSliceVarP(&opts.urls, "urls", "u", nil, "URLs to download (repeatable or comma separated)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output directory (default from config: downloads)")
	flags.IntVarP(&opts.fragments, "fragments", "j", 0, "Concurrent fragment downloads per video")
	flags.IntVar(&opts.retries, "retries", 0, "Retry count for downloads and fragments")
	flags.StringVar(&opts.proxy, "proxy", "", "Proxy URL (http, https, socks4, socks5)")
	flags.BoolVar(&opts.noProxy, "no-proxy", false, "Disable proxy use and auto-discovery")
	flags.BoolVar(&opts.jsonSummary, "json-summary", false, "Print the summary as JSON on stdout")
	cmd.MarkFlagsMutuallyExclusive("proxy", "no-proxy")
}

func runDownloads(cmd *cobra.Command, ctx *commandContext, opts *runOptions, args []string) error {
	urls, err := collectInput(opts, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(urls) == 0 {
		fmt.Fprintln(out, "No URLs to download.")
		return nil
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := applyRunOverrides(cmd, cfg, opts); err != nil {
		return err
	}

	logger, err := ctx.logger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	runCtx := cmd.Context()
	cfg.Download.Proxy = ctx.resolveProxy(runCtx, cfg, logger)

	fetcher, lister, err := ctx.services(cfg, logger)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "startup", "engine", "cannot initialise fetch service", err)
	}

	reporter := newReporter(cmd, opts.jsonSummary)
	settings := cfg.Downloader()
	eng := engine.New(fetcher, settings,
		engine.WithReporter(reporter),
		engine.WithLogger(logger),
		engine.WithSocketTimeout(secondsDuration(cfg.Engine.SocketTimeout)),
		engine.WithExtractorRetries(cfg.Engine.ExtractorRetries),
	)
	manager := workflow.NewManager(settings, playlist.NewExpander(lister, logger), eng, reporter, logger)
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Warn("release output directory failed", logging.Error(err))
		}
	}()

	logger.Info("vidq run starting",
		logging.Int("inputs", len(urls)),
		logging.String("output_dir", settings.OutputDir),
		logging.String(logging.FieldRunID, manager.RunID()),
	)
	if added := manager.EnqueueMany(runCtx, urls); added == 0 && runCtx.Err() == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "No downloadable videos found.")
	}
	_, err = manager.ProcessAll(runCtx)
	return err
}

// collectInput validates that exactly one input source was given and returns
// its filtered URLs.
func collectInput(opts *runOptions, args []string) ([]string, error) {
	file := strings.TrimSpace(opts.file)
	inline := append(append([]string(nil), opts.urls...), args...)
	switch {
	case file != "" && len(inline) > 0:
		return nil, services.Wrap(services.ErrConfiguration, "input", "", "use either --file or URLs, not both", nil)
	case file == "" && len(inline) == 0:
		return nil, services.Wrap(services.ErrConfiguration, "input", "", "no input: pass --file or one or more URLs", nil)
	case file != "":
		urls, err := links.LoadFile(file)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, services.Wrap(services.ErrConfiguration, "input", "", fmt.Sprintf("file not found: %s", file), nil)
			}
			return nil, services.Wrap(services.ErrConfiguration, "input", "read", file, err)
		}
		return urls, nil
	default:
		return links.FilterLines(links.SplitArgs(inline)), nil
	}
}

func applyRunOverrides(cmd *cobra.Command, cfg *config.Config, opts *runOptions) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		dir, err := config.ExpandPath(strings.TrimSpace(opts.output))
		if err != nil {
			return services.Wrap(services.ErrConfiguration, "config", "output", opts.output, err)
		}
		cfg.Paths.OutputDir = dir
	}
	if flags.Changed("fragments") {
		cfg.Download.Fragments = opts.fragments
	}
	if flags.Changed("retries") {
		cfg.Download.MaxRetries = opts.retries
	}
	if flags.Changed("proxy") {
		cfg.Download.Proxy = strings.TrimSpace(opts.proxy)
	}
	if opts.noProxy {
		cfg.Download.Proxy = ""
		cfg.Download.AutoProxy = false
	}
	return cfg.Validate()
}

func newReporter(cmd *cobra.Command, jsonSummary bool) report.Reporter {
	if jsonSummary {
		return report.NewConsole(cmd.ErrOrStderr(),
			report.WithJSONSummary(true),
			report.WithSummaryWriter(cmd.OutOrStdout()),
		)
	}
	return report.NewConsole(cmd.OutOrStdout())
}
