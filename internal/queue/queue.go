package queue

// Queue holds pending tasks in FIFO order and completed tasks in completion
// order. A task is in at most one of the two lists. It is not safe for
// concurrent use.
type Queue struct {
	pending   []*Task
	completed []*Task
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push appends tasks to the tail of the pending list.
func (q *Queue) Push(tasks ...*Task) {
	for _, task := range tasks {
		if task != nil {
			q.pending = append(q.pending, task)
		}
	}
}

// Pop removes and returns the head of the pending list.
func (q *Queue) Pop() (*Task, bool) {
	if len(q.pending) == 0 {
		return nil, false
	}
	task := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return task, true
}

// Complete appends a popped task to the completed list regardless of outcome.
func (q *Queue) Complete(task *Task) {
	if task != nil {
		q.completed = append(q.completed, task)
	}
}

// Pending returns a snapshot of the pending list.
func (q *Queue) Pending() []*Task {
	return append([]*Task(nil), q.pending...)
}

// Completed returns a snapshot of the completed list.
func (q *Queue) Completed() []*Task {
	return append([]*Task(nil), q.completed...)
}

// PendingLen returns the number of tasks awaiting processing.
func (q *Queue) PendingLen() int { return len(q.pending) }

// CompletedLen returns the number of processed tasks.
func (q *Queue) CompletedLen() int { return len(q.completed) }

// Enqueued returns the number of tasks ever pushed that have not been lost,
// which is the sum of pending and completed. The in-flight task, if any, is
// not counted.
func (q *Queue) Enqueued() int { return len(q.pending) + len(q.completed) }
