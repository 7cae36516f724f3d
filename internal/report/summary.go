package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"vidq/internal/queue"
	"vidq/internal/textutil"
)

const (
	titleWidth = 45
	errorWidth = 80
)

var summaryColumns = []Column{
	{AlignRight: true},
	{MaxWidth: titleWidth},
	{},
	{MaxWidth: errorWidth},
}

// RenderSummary renders the end-of-run table followed by the totals line.
func RenderSummary(summary queue.Summary) string {
	rows := make([][]string, 0, len(summary.Rows))
	for _, row := range summary.Rows {
		rows = append(rows, []string{
			strconv.Itoa(row.Index),
			textutil.Truncate(row.Label, titleWidth),
			string(row.Status),
			textutil.Truncate(row.Error, errorWidth),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"#", "Title", "Status", "Error"}, rows, summaryColumns))
	b.WriteString("\n")
	b.WriteString(Totals(summary))
	return b.String()
}

// Totals renders "N succeeded | M failed".
func Totals(summary queue.Summary) string {
	return fmt.Sprintf("%d succeeded | %d failed", summary.Succeeded, summary.Failed)
}

// WriteSummaryJSON encodes summary as indented JSON.
func WriteSummaryJSON(w io.Writer, summary queue.Summary) error {
	return WriteJSON(w, summary)
}
