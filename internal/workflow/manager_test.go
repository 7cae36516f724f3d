package workflow_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidq/internal/engine"
	"vidq/internal/media"
	"vidq/internal/outdir"
	"vidq/internal/playlist"
	"vidq/internal/queue"
	"vidq/internal/services"
	"vidq/internal/testsupport"
	"vidq/internal/workflow"
)

type harness struct {
	manager  *workflow.Manager
	fetcher  *testsupport.StubFetcher
	reporter *testsupport.RecordingReporter
	outDir   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	fetcher := testsupport.NewStubFetcher()
	reporter := &testsupport.RecordingReporter{}
	settings := cfg.Downloader()
	eng := engine.New(fetcher, settings, engine.WithReporter(reporter))
	mgr := workflow.NewManager(settings, playlist.NewExpander(fetcher, nil), eng, reporter, nil)
	t.Cleanup(func() { _ = mgr.Close() })
	return &harness{manager: mgr, fetcher: fetcher, reporter: reporter, outDir: settings.OutputDir}
}

func urls(tasks []*queue.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.URL())
	}
	return out
}

func TestEnqueueStripsPlaylistFromVideoURL(t *testing.T) {
	h := newHarness(t)
	added := h.manager.Enqueue(context.Background(), "  https://example.com/watch?v=ID1&list=PL9&index=3 ")
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	got := urls(h.manager.Pending())
	if len(got) != 1 || got[0] != "https://example.com/watch?v=ID1" {
		t.Fatalf("pending = %v", got)
	}
	if len(h.fetcher.Listed) != 0 {
		t.Fatalf("video url must not be expanded, listed %v", h.fetcher.Listed)
	}
}

func TestEnqueueExpandsPlaylist(t *testing.T) {
	h := newHarness(t)
	playlistURL := "https://example.com/playlist?list=PL9"
	h.fetcher.Listings[playlistURL] = media.Listing{
		IsPlaylist: true,
		Entries:    []*media.Entry{{ID: "A"}, {ID: "B"}, nil, {Title: "no id"}, {ID: "C"}},
	}

	if added := h.manager.Enqueue(context.Background(), playlistURL); added != 3 {
		t.Fatalf("added = %d, want 3", added)
	}
	want := []string{
		"https://www.youtube.com/watch?v=A",
		"https://www.youtube.com/watch?v=B",
		"https://www.youtube.com/watch?v=C",
	}
	got := urls(h.manager.Pending())
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("pending = %v, want %v", got, want)
	}
	for _, task := range h.manager.Pending() {
		if task.Status != queue.StatusPending {
			t.Fatalf("expanded task %s not pending", task.URL())
		}
	}
}

func TestEnqueueFailedExpansionAddsNothing(t *testing.T) {
	h := newHarness(t)
	h.fetcher.ListErr = errors.New("playlist does not exist")
	if added := h.manager.Enqueue(context.Background(), "https://example.com/playlist?list=GONE"); added != 0 {
		t.Fatalf("added = %d, want 0", added)
	}

	h.fetcher.ListErr = nil
	h.fetcher.Listings["https://example.com/playlist?list=EMPTY"] = media.Listing{IsPlaylist: true}
	if added := h.manager.Enqueue(context.Background(), "https://example.com/playlist?list=EMPTY"); added != 0 {
		t.Fatalf("added = %d for empty playlist, want 0", added)
	}
	if n := len(h.manager.Pending()); n != 0 {
		t.Fatalf("pending = %d, want 0", n)
	}
}

func TestEnqueueManySkipsBlankAndComments(t *testing.T) {
	h := newHarness(t)
	added := h.manager.EnqueueMany(context.Background(), []string{
		"https://example.com/watch?v=1",
		"",
		"   ",
		"# https://example.com/watch?v=skipped",
		"https://example.com/watch?v=2",
	})
	if added != 2 {
		t.Fatalf("added = %d, want 2", added)
	}
}

func TestProcessAllMixedOutcomes(t *testing.T) {
	h := newHarness(t)
	h.fetcher.Scripts["https://example.com/watch?v=2"] = testsupport.FetchScript{
		Err: services.Wrap(services.ErrFetch, "fetch", "yt-dlp", "blocked", nil),
	}
	h.manager.EnqueueMany(context.Background(), []string{
		"https://example.com/watch?v=1",
		"https://example.com/watch?v=2",
		"https://example.com/watch?v=3",
	})

	completed, err := h.manager.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}
	want := []string{"https://example.com/watch?v=1", "https://example.com/watch?v=2", "https://example.com/watch?v=3"}
	if strings.Join(urls(completed), ",") != strings.Join(want, ",") {
		t.Fatalf("completed order = %v, want %v", urls(completed), want)
	}
	if strings.Join(h.fetcher.Fetched, ",") != strings.Join(want, ",") {
		t.Fatalf("fetch order = %v, want %v", h.fetcher.Fetched, want)
	}

	summary := h.manager.Summary()
	if summary.Total != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if completed[1].Status != queue.StatusFailed || !strings.Contains(completed[1].Error, "blocked") {
		t.Fatalf("task 2 = %s %q", completed[1].Status, completed[1].Error)
	}
	for _, i := range []int{0, 2} {
		if completed[i].Status != queue.StatusCompleted || completed[i].Progress != 100 {
			t.Fatalf("task %d = %s %v", i+1, completed[i].Status, completed[i].Progress)
		}
	}
	if h.manager.State() != workflow.StateDrained {
		t.Fatalf("state = %s, want drained", h.manager.State())
	}
	if n := len(h.manager.Pending()); n != 0 {
		t.Fatalf("pending = %d after drain", n)
	}
	if h.reporter.Count("summary") != 1 || h.reporter.Count("outcome") != 3 || h.reporter.Count("started") != 3 {
		t.Fatalf("unexpected reporter events %v", h.reporter.Kinds())
	}
	if _, err := os.Stat(h.outDir); err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
}

func TestProcessAllProbeNeverGatesFetch(t *testing.T) {
	h := newHarness(t)
	h.fetcher.ProbeErr = errors.New("metadata unavailable")
	h.manager.Enqueue(context.Background(), "https://example.com/watch?v=1")

	completed, err := h.manager.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}
	if len(completed) != 1 || completed[0].Status != queue.StatusCompleted {
		t.Fatalf("probe failure should not affect fetch: %+v", completed)
	}
	started := h.reporter.Events[0]
	if started.Kind != "started" || started.Index != 1 || started.Total != 1 || started.Meta != (media.Metadata{}) {
		t.Fatalf("unexpected started event %+v", started)
	}
}

func TestProcessAllContainsPanics(t *testing.T) {
	h := newHarness(t)
	h.fetcher.Scripts["https://example.com/watch?v=1"] = testsupport.FetchScript{Panic: "boom"}
	h.manager.EnqueueMany(context.Background(), []string{"https://example.com/watch?v=1", "https://example.com/watch?v=2"})

	completed, err := h.manager.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}
	if completed[0].Status != queue.StatusFailed || completed[1].Status != queue.StatusCompleted {
		t.Fatalf("unexpected statuses %s %s", completed[0].Status, completed[1].Status)
	}
}

func TestProcessAllEmptyQueue(t *testing.T) {
	h := newHarness(t)
	completed, err := h.manager.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}
	if len(completed) != 0 {
		t.Fatalf("expected no tasks, got %d", len(completed))
	}
	summary := h.manager.Summary()
	if summary.Total != 0 || summary.Succeeded != 0 || summary.Failed != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestProcessAllEmptyQueueLockedDir(t *testing.T) {
	h := newHarness(t)
	other := outdir.New(h.outDir)
	if err := other.Ensure(); err != nil {
		t.Fatalf("lock output dir: %v", err)
	}
	t.Cleanup(func() { _ = other.Release() })

	completed, err := h.manager.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("empty queue should not need the output dir: %v", err)
	}
	if len(completed) != 0 {
		t.Fatalf("expected no tasks, got %d", len(completed))
	}
	if h.manager.State() != workflow.StateDrained {
		t.Fatalf("state = %s, want drained", h.manager.State())
	}
	if h.reporter.Count("summary") != 1 {
		t.Fatalf("summary reported %d times, want 1", h.reporter.Count("summary"))
	}
}

func TestProcessAllEmptyQueueUnusableDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings := cfg.Downloader()
	settings.OutputDir = filepath.Join(blocker, "downloads")
	fetcher := testsupport.NewStubFetcher()
	mgr := workflow.NewManager(settings, playlist.NewExpander(fetcher, nil), engine.New(fetcher, settings), nil, nil)

	completed, err := mgr.ProcessAll(context.Background())
	if err != nil || len(completed) != 0 {
		t.Fatalf("ProcessAll = %d tasks, %v; want 0, nil", len(completed), err)
	}
	if _, err := os.Stat(settings.OutputDir); err == nil {
		t.Fatal("output dir should not be created for an empty queue")
	}
}

func TestProcessAllIsNoOpWhenDrained(t *testing.T) {
	h := newHarness(t)
	h.manager.Enqueue(context.Background(), "https://example.com/watch?v=1")
	first, err := h.manager.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("first ProcessAll: %v", err)
	}
	second, err := h.manager.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("second ProcessAll: %v", err)
	}
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Fatalf("second drain should return the same completed list")
	}
	if h.reporter.Count("summary") != 1 {
		t.Fatalf("summary reported %d times, want 1", h.reporter.Count("summary"))
	}
	if len(h.fetcher.Fetched) != 1 {
		t.Fatalf("task fetched %d times", len(h.fetcher.Fetched))
	}
}

func TestProcessAllAfterDrainHandlesNewTasks(t *testing.T) {
	h := newHarness(t)
	h.manager.Enqueue(context.Background(), "https://example.com/watch?v=1")
	if _, err := h.manager.ProcessAll(context.Background()); err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}
	h.manager.Enqueue(context.Background(), "https://example.com/watch?v=2")
	completed, err := h.manager.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}
	if len(completed) != 2 || strings.Join(h.fetcher.Fetched, ",") != "https://example.com/watch?v=1,https://example.com/watch?v=2" {
		t.Fatalf("unexpected fetches %v", h.fetcher.Fetched)
	}
	last := h.reporter.Events[len(h.reporter.Events)-1]
	if last.Kind != "summary" || last.Summary.Total != 2 {
		t.Fatalf("unexpected final event %+v", last)
	}
}

func TestProcessAllCancelledLeavesRemainingPending(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settings := testsupport.NewConfig(t).Downloader()
	fetcher := testsupport.NewStubFetcher()
	reporter := &cancellingReporter{RecordingReporter: &testsupport.RecordingReporter{}, cancel: cancel}
	eng := engine.New(fetcher, settings, engine.WithReporter(reporter))
	mgr := workflow.NewManager(settings, playlist.NewExpander(fetcher, nil), eng, reporter, nil)
	t.Cleanup(func() { _ = mgr.Close() })
	mgr.EnqueueMany(context.Background(), []string{
		"https://example.com/watch?v=1",
		"https://example.com/watch?v=2",
		"https://example.com/watch?v=3",
	})

	completed, err := mgr.ProcessAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(completed) != 1 || completed[0].Status != queue.StatusCompleted {
		t.Fatalf("unexpected completed %+v", completed)
	}
	pending := mgr.Pending()
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}
	for _, task := range pending {
		if task.Status != queue.StatusPending {
			t.Fatalf("remaining task %s is %s", task.URL(), task.Status)
		}
	}
	if mgr.State() != workflow.StateIdle {
		t.Fatalf("state = %s, want idle", mgr.State())
	}
	if reporter.Count("summary") != 0 {
		t.Fatal("interrupted run must not report a summary")
	}
	if len(fetcher.Fetched) != 1 {
		t.Fatalf("fetched %v after cancellation", fetcher.Fetched)
	}
}

func TestProcessAllLockedOutputDir(t *testing.T) {
	h := newHarness(t)
	other := outdir.New(h.outDir)
	if err := other.Ensure(); err != nil {
		t.Fatalf("lock output dir: %v", err)
	}
	t.Cleanup(func() { _ = other.Release() })

	h.manager.Enqueue(context.Background(), "https://example.com/watch?v=1")
	_, err := h.manager.ProcessAll(context.Background())
	if !errors.Is(err, outdir.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if len(h.fetcher.Fetched) != 0 || len(h.manager.Pending()) != 1 {
		t.Fatal("no task may run without the output directory")
	}
}

func TestProcessAllOutputDirBlocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings := cfg.Downloader()
	settings.OutputDir = filepath.Join(blocker, "downloads")
	fetcher := testsupport.NewStubFetcher()
	mgr := workflow.NewManager(settings, playlist.NewExpander(fetcher, nil), engine.New(fetcher, settings), nil, nil)
	mgr.Enqueue(context.Background(), "https://example.com/watch?v=1")

	_, err := mgr.ProcessAll(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunIDOption(t *testing.T) {
	settings := testsupport.NewConfig(t).Downloader()
	fetcher := testsupport.NewStubFetcher()
	mgr := workflow.NewManager(settings, playlist.NewExpander(fetcher, nil), engine.New(fetcher, settings), nil, nil, workflow.WithRunID("run-1"))
	if mgr.RunID() != "run-1" {
		t.Fatalf("RunID = %q", mgr.RunID())
	}
	if workflow.NewManager(settings, nil, nil, nil, nil).RunID() == "" {
		t.Fatal("expected generated run id")
	}
}

// cancellingReporter cancels the run once the first task finishes.
type cancellingReporter struct {
	*testsupport.RecordingReporter
	cancel context.CancelFunc
}

func (r *cancellingReporter) Outcome(task *queue.Task) {
	r.RecordingReporter.Outcome(task)
	r.cancel()
}
