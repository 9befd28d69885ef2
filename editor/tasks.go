package editor

// TaskID identifies a scheduled task. The zero value is never issued.
type TaskID int

type task struct {
	id    TaskID
	ticks int
	fn    func()
}

// Tasks runs one-shot callbacks after a number of frames. Every pending
// task belongs to the session and is dropped when the session closes.
type Tasks struct {
	next    TaskID
	pending []*task
	closed  bool
}

func NewTasks() *Tasks {
	return &Tasks{}
}

// After schedules fn to run on the Update call ticks frames from now.
// ticks <= 0 runs it on the next Update.
func (t *Tasks) After(ticks int, fn func()) TaskID {
	if t.closed || fn == nil {
		return 0
	}
	t.next++
	t.pending = append(t.pending, &task{id: t.next, ticks: ticks, fn: fn})
	return t.next
}

// Cancel drops a pending task. It reports false if the task already ran or
// was never scheduled.
func (t *Tasks) Cancel(id TaskID) bool {
	for i, tk := range t.pending {
		if tk.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Tasks) Pending() int {
	return len(t.pending)
}

// Update advances one frame and runs every task that came due, in the
// order they were scheduled.
func (t *Tasks) Update() {
	if t.closed {
		return
	}
	var due []*task
	keep := t.pending[:0]
	for _, tk := range t.pending {
		tk.ticks--
		if tk.ticks <= 0 {
			due = append(due, tk)
			continue
		}
		keep = append(keep, tk)
	}
	t.pending = keep
	for _, tk := range due {
		if t.closed {
			return
		}
		tk.fn()
	}
}

// Close cancels everything pending and refuses new tasks.
func (t *Tasks) Close() {
	t.closed = true
	t.pending = nil
}
