package preflight

import (
	"context"
	"path/filepath"

	"vidq/internal/config"
	"vidq/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config, discoverer ProxyDiscoverer) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckBinaries(deps.Requirements(cfg.Engine.Binary))...)
	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckFreeSpace("Free space", cfg.Paths.OutputDir))
	results = append(results, CheckProxy(ctx, cfg, discoverer))
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func parentDir(path string) string {
	return filepath.Dir(filepath.Clean(path))
}
