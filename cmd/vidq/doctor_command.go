package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vidq/internal/config"
	"vidq/internal/logging"
	"vidq/internal/preflight"
	"vidq/internal/report"
)

type versioner interface {
	Version(ctx context.Context) (string, error)
}

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check yt-dlp, the output directory, and proxy settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, ctx.discoverer)

			rows := make([][]string, 0, len(results)+1)
			for _, r := range results {
				rows = append(rows, []string{r.Name, passLabel(r.Passed), r.Detail})
			}
			if version, ok := engineVersion(cmd.Context(), ctx, cfg); ok {
				rows = append(rows, []string{"yt-dlp version", passLabel(true), version})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.RenderTable([]string{"Check", "Status", "Detail"}, rows, nil))
			if !preflight.AllPassed(results) {
				return errors.New("one or more checks failed")
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}

func engineVersion(ctx context.Context, cc *commandContext, cfg *config.Config) (string, bool) {
	fetcher, _, err := cc.services(cfg, logging.NewNop())
	if err != nil {
		return "", false
	}
	v, ok := fetcher.(versioner)
	if !ok {
		return "", false
	}
	version, err := v.Version(ctx)
	if err != nil || version == "" {
		return "", false
	}
	return version, true
}

func passLabel(passed bool) string {
	if passed {
		return "OK"
	}
	return "FAIL"
}
