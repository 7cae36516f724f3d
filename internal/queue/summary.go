package queue

// SummaryRow is one line of the end-of-run report.
type SummaryRow struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	URL    string `json:"url"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Summary aggregates the completed list.
type Summary struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Rows      []SummaryRow `json:"tasks"`
}

// Summary builds the report for all completed tasks in completion order.
func (q *Queue) Summary() Summary {
	return Summarize(q.completed)
}

// Summarize builds a report for tasks in the given order. Non-terminal tasks
// are listed but counted as neither succeeded nor failed.
func Summarize(tasks []*Task) Summary {
	summary := Summary{Rows: make([]SummaryRow, 0, len(tasks))}
	for i, task := range tasks {
		if task == nil {
			continue
		}
		summary.Total++
		switch task.Status {
		case StatusCompleted:
			summary.Succeeded++
		case StatusFailed:
			summary.Failed++
		}
		summary.Rows = append(summary.Rows, SummaryRow{
			Index:  i + 1,
			Label:  task.DisplayTitle(),
			URL:    task.URL(),
			Status: task.Status,
			Error:  task.Error,
		})
	}
	return summary
}
