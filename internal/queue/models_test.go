package queue_test

import (
	"testing"
	"time"

	"vidq/internal/queue"
)

func TestNewTaskIsPending(t *testing.T) {
	task := queue.NewTask("https://www.youtube.com/watch?v=a")
	if task.Status != queue.StatusPending {
		t.Fatalf("status = %s, want pending", task.Status)
	}
	if task.ID == "" {
		t.Fatal("expected task id")
	}
	if task.URL() != "https://www.youtube.com/watch?v=a" {
		t.Fatalf("unexpected url %q", task.URL())
	}
	if task.DisplayTitle() != task.URL() {
		t.Fatalf("expected url as display title before resolution, got %q", task.DisplayTitle())
	}
}

func TestTaskLifecycleSuccess(t *testing.T) {
	task := queue.NewTask("u")
	if !task.MarkDownloading() {
		t.Fatal("expected pending -> downloading")
	}
	if task.MarkDownloading() {
		t.Fatal("second MarkDownloading should be a no-op")
	}
	task.UpdateProgress(42.5, true, 1024, 3*time.Second)
	if task.Progress != 42.5 || !task.ProgressKnown {
		t.Fatalf("unexpected progress %v known=%v", task.Progress, task.ProgressKnown)
	}
	task.UpdateProgress(0, false, 2048, 0)
	if task.Progress != 42.5 || task.ProgressKnown {
		t.Fatalf("indeterminate sample should keep progress and clear known flag, got %v %v", task.Progress, task.ProgressKnown)
	}
	task.SetFilename("/out/Title.mp4")
	if !task.Complete("  ") {
		t.Fatal("expected completion")
	}
	if task.Status != queue.StatusCompleted || task.Progress != 100 {
		t.Fatalf("unexpected terminal state %s %v", task.Status, task.Progress)
	}
	if task.Title != queue.UnknownTitle {
		t.Fatalf("blank title should fall back to %q, got %q", queue.UnknownTitle, task.Title)
	}
	if task.Filename != "/out/Title.mp4" {
		t.Fatalf("filename = %q", task.Filename)
	}
}

func TestTerminalStatesAreFinal(t *testing.T) {
	task := queue.NewTask("u")
	if !task.Fail("") {
		t.Fatal("expected failure transition")
	}
	if task.Error == "" {
		t.Fatal("failed task must carry an error message")
	}
	if task.Complete("Title") {
		t.Fatal("completed after failure")
	}
	if task.MarkDownloading() {
		t.Fatal("downloading after failure")
	}
	task.UpdateProgress(80, true, 0, 0)
	task.SetFilename("x")
	if task.Status != queue.StatusFailed || task.Progress != 0 || task.Filename != "" {
		t.Fatalf("terminal task mutated: %+v", task)
	}

	done := queue.NewTask("v")
	done.Complete("T")
	if done.Fail("late") {
		t.Fatal("failed after completion")
	}
	if done.Error != "" {
		t.Fatalf("completed task gained error %q", done.Error)
	}
}

func TestProgressClamped(t *testing.T) {
	task := queue.NewTask("u")
	task.UpdateProgress(140, true, 0, 0)
	if task.Progress != 100 {
		t.Fatalf("progress = %v, want 100", task.Progress)
	}
	task.UpdateProgress(-3, true, 0, 0)
	if task.Progress != 0 {
		t.Fatalf("progress = %v, want 0", task.Progress)
	}
}
