package core

import "fmt"

// Task is one sampled workload admitted to simulation. BurstTotal is the
// observed CPU demand and is fixed for the whole run; the schedulers keep
// their own remaining-burst counters and never touch the Task itself.
type Task struct {
	ID         int
	Label      string
	Arrival    int
	BurstTotal int

	// Raw sampling detail, carried through for display only.
	UTime    uint64
	STime    uint64
	CPUTotal uint64
	State    string
}

// TimelineSegment is one contiguous interval during which exactly one task
// holds the CPU.
type TimelineSegment struct {
	TaskID int `json:"task_id"`
	Start  int `json:"start"`
	End    int `json:"end"`
}

// Duration of the segment in simulation ticks.
func (s TimelineSegment) Duration() int {
	return s.End - s.Start
}

// Registry is the immutable, ordered set of schedulable tasks for one
// simulation request. Registry order is the tie-break order everywhere.
type Registry struct {
	tasks []Task
}

// NewRegistry validates the sampled tasks and builds the registry.
func NewRegistry(tasks []Task) (*Registry, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyRegistry
	}
	for _, t := range tasks {
		if t.BurstTotal <= 0 {
			return nil, fmt.Errorf("%w: task %d (%s) has burst %d", ErrNonPositiveBurst, t.ID, t.Label, t.BurstTotal)
		}
		if t.Arrival < 0 {
			return nil, fmt.Errorf("%w: task %d has negative arrival %d", ErrInvalidInput, t.ID, t.Arrival)
		}
	}
	reg := &Registry{tasks: make([]Task, len(tasks))}
	copy(reg.tasks, tasks)
	return reg, nil
}

// Tasks returns a copy of the registered tasks in registry order.
func (r *Registry) Tasks() []Task {
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func (r *Registry) Len() int {
	return len(r.tasks)
}
