package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"vidq/internal/logging"
	"vidq/internal/media"
	"vidq/internal/queue"
	"vidq/internal/textutil"
)

const barDescriptionWidth = 30

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithInteractive forces progress bars on or off instead of detecting a TTY.
func WithInteractive(interactive bool) ConsoleOption {
	return func(c *Console) {
		c.interactive = interactive
	}
}

// WithColor forces colour on or off instead of detecting a TTY.
func WithColor(enabled bool) ConsoleOption {
	return func(c *Console) {
		c.colorize = enabled
	}
}

// WithJSONSummary prints the summary as JSON instead of a table.
func WithJSONSummary(enabled bool) ConsoleOption {
	return func(c *Console) {
		c.jsonSummary = enabled
	}
}

// WithSummaryWriter sends the summary to w instead of the progress writer.
func WithSummaryWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		if w != nil {
			c.summaryOut = w
		}
	}
}

// WithSampler replaces the sampler throttling non-interactive progress lines.
func WithSampler(sampler *logging.ProgressSampler) ConsoleOption {
	return func(c *Console) {
		if sampler != nil {
			c.sampler = sampler
		}
	}
}

// Console renders run progress for a human. On a terminal each task gets a
// progress bar (a spinner when the size is unknown); elsewhere progress is
// printed as sampled text lines.
type Console struct {
	out         io.Writer
	summaryOut  io.Writer
	interactive bool
	colorize    bool
	jsonSummary bool
	sampler     *logging.ProgressSampler

	success *color.Color
	failure *color.Color
	accent  *color.Color
	dim     *color.Color

	bar     *progressbar.ProgressBar
	barTask string
	barMax  int64
}

// NewConsole constructs a Console writing to out.
func NewConsole(out io.Writer, opts ...ConsoleOption) *Console {
	tty := isTerminal(out)
	c := &Console{
		out:         out,
		summaryOut:  out,
		interactive: tty,
		colorize:    tty,
		sampler:     logging.NewProgressSampler(10),
		success:     color.New(color.FgGreen, color.Bold),
		failure:     color.New(color.FgRed, color.Bold),
		accent:      color.New(color.FgCyan),
		dim:         color.New(color.Faint),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, col := range []*color.Color{c.success, c.failure, c.accent, c.dim} {
		if c.colorize {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

func (c *Console) TaskStarted(index, total int, task *queue.Task, meta media.Metadata) {
	c.closeBar(false)
	c.sampler.Reset()

	label := meta.Title
	if label == "" {
		label = task.DisplayTitle()
	}
	fmt.Fprintf(c.out, "%s %s\n", c.accent.Sprintf("[%d/%d]", index, total), label)
	if line := describeMetadata(meta); line != "" {
		fmt.Fprintf(c.out, "  %s\n", c.dim.Sprint(line))
	}
}

func (c *Console) Progress(task *queue.Task, event media.Progress) {
	switch event.Status {
	case media.ProgressDownloading:
		if c.interactive {
			c.updateBar(task, event)
			return
		}
		sample := -1.0
		if pct, ok := event.Percent(); ok {
			sample = pct
		}
		if c.sampler.ShouldLog(sample, task.ID) {
			fmt.Fprintf(c.out, "  %s\n", describeProgress(event))
		}
	case media.ProgressFinished:
		c.closeBar(true)
	}
}

func (c *Console) Outcome(task *queue.Task) {
	c.closeBar(task.Status == queue.StatusCompleted)
	switch task.Status {
	case queue.StatusCompleted:
		fmt.Fprintf(c.out, "%s %s\n", c.success.Sprint("✔ Downloaded:"), task.DisplayTitle())
		if task.Filename != "" {
			fmt.Fprintf(c.out, "  %s\n", c.dim.Sprint(task.Filename))
		}
	case queue.StatusFailed:
		fmt.Fprintf(c.out, "%s %s\n", c.failure.Sprint("✘ Failed:"), task.DisplayTitle())
		fmt.Fprintf(c.out, "  %s\n", textutil.Truncate(task.Error, errorWidth))
	}
}

func (c *Console) Summary(summary queue.Summary) {
	c.closeBar(false)
	if c.jsonSummary {
		_ = WriteSummaryJSON(c.summaryOut, summary)
		return
	}
	fmt.Fprintln(c.summaryOut)
	if summary.Total > 0 {
		fmt.Fprintln(c.summaryOut, RenderSummary(summary))
		return
	}
	fmt.Fprintln(c.summaryOut, Totals(summary))
}

func (c *Console) updateBar(task *queue.Task, event media.Progress) {
	total, known := event.KnownTotal()
	want := int64(-1)
	if known {
		want = total
	}
	if c.bar == nil || c.barTask != task.ID || (known && c.barMax < 0) {
		c.closeBar(false)
		c.bar = c.newBar(task, want)
		c.barTask = task.ID
		c.barMax = want
	}
	if known && want != c.barMax {
		c.bar.ChangeMax64(want)
		c.barMax = want
	}
	_ = c.bar.Set64(event.Downloaded)
}

func (c *Console) newBar(task *queue.Task, max int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(max,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(textutil.Truncate(task.DisplayTitle(), barDescriptionWidth)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(c.colorize),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// closeBar finishes (fills) or abandons the active bar and moves to a new line.
func (c *Console) closeBar(finish bool) {
	if c.bar == nil {
		return
	}
	if finish {
		_ = c.bar.Finish()
	} else {
		_ = c.bar.Exit()
	}
	fmt.Fprintln(c.out)
	c.bar = nil
	c.barTask = ""
	c.barMax = 0
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
