package outdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"vidq/internal/services"
)

// LockFileName is created inside the output directory while a run holds it.
const LockFileName = ".vidq.lock"

// ErrLocked reports that another vidq run owns the directory.
var ErrLocked = errors.New("output directory in use by another vidq run")

// Guard prepares an output directory at most once and holds an advisory
// lock on it for the duration of a run.
type Guard struct {
	dir  string
	lock *flock.Flock

	mu      sync.Mutex
	ensured bool
}

// New returns a Guard for dir. Nothing touches the filesystem until Ensure.
func New(dir string) *Guard {
	dir = strings.TrimSpace(dir)
	return &Guard{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, LockFileName)),
	}
}

// Dir returns the guarded directory.
func (g *Guard) Dir() string {
	return g.dir
}

// Ensure creates the directory and takes the run lock. Repeated calls are
// no-ops once the first succeeded.
func (g *Guard) Ensure() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ensured {
		return nil
	}
	if g.dir == "" {
		return services.Wrap(services.ErrConfiguration, "outdir", "ensure", "output directory not configured", nil)
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "outdir", "create", g.dir, err)
	}
	ok, err := g.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, g.dir)
	}
	g.ensured = true
	return nil
}

// Release drops the run lock. The lock file stays in place so every run locks
// the same inode. It is safe to call when Ensure never ran.
func (g *Guard) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.ensured {
		return nil
	}
	g.ensured = false
	if err := g.lock.Unlock(); err != nil {
		return fmt.Errorf("release output lock: %w", err)
	}
	return nil
}
