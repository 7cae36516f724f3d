package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"vidq/internal/config"
	"vidq/internal/deps"
)

// MinFreeBytes is the free space below which the output directory check fails.
const MinFreeBytes = 1 << 30

// ProxyDiscoverer probes for a local proxy. proxy.Prober satisfies it.
type ProxyDiscoverer interface {
	Discover(ctx context.Context) string
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
// A missing directory passes when its parent is writable since runs create it.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return checkCreatable(name, path)
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func checkCreatable(name, path string) Result {
	parent := nearestExistingParent(path)
	if parent == "" {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckFreeSpace reports the free space on the filesystem holding path.
func CheckFreeSpace(name, path string) Result {
	target := nearestExistingParent(path)
	if target == "" {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing parent)", path)}
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(target, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", target, err)}
	}
	free := uint64(stat.Bavail) * uint64(stat.Bsize) //nolint:gosec
	detail := fmt.Sprintf("%s free", humanize.Bytes(free))
	if free < MinFreeBytes {
		return Result{Name: name, Detail: detail + fmt.Sprintf(" (below %s)", humanize.Bytes(MinFreeBytes))}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckBinaries converts dependency probes into results. Missing optional
// binaries pass with an explanatory detail.
func CheckBinaries(requirements []deps.Requirement) []Result {
	statuses := deps.CheckBinaries(requirements)
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		result := Result{Name: status.Name, Passed: status.Satisfied()}
		switch {
		case status.Available:
			result.Detail = status.Command
		case status.Optional:
			result.Detail = fmt.Sprintf("%s (optional: %s)", status.Detail, status.Description)
		default:
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	return results
}

// CheckProxy reports the configured proxy, or the discovered one when
// auto-discovery is enabled. A missing proxy is not a failure.
func CheckProxy(ctx context.Context, cfg *config.Config, discoverer ProxyDiscoverer) Result {
	const name = "Proxy"
	if proxy := strings.TrimSpace(cfg.Download.Proxy); proxy != "" {
		if err := config.ValidateProxy(proxy); err != nil {
			return Result{Name: name, Detail: err.Error()}
		}
		return Result{Name: name, Passed: true, Detail: proxy + " (configured)"}
	}
	if !cfg.Download.AutoProxy || discoverer == nil {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	if found := discoverer.Discover(ctx); found != "" {
		return Result{Name: name, Passed: true, Detail: found + " (discovered)"}
	}
	return Result{Name: name, Passed: true, Detail: "none found, connecting directly"}
}

func nearestExistingParent(path string) string {
	current := strings.TrimSpace(path)
	for current != "" {
		if _, err := os.Stat(current); err == nil {
			return current
		}
		parent := parentDir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
	return ""
}
