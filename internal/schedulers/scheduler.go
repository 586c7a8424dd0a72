package schedulers

import (
	"fmt"

	"schedsim/internal/core"
)

// Algorithm selects one of the scheduling strategies.
type Algorithm string

const (
	RoundRobin                 Algorithm = "RR"
	ShortestRemainingTimeFirst Algorithm = "SRTF"
)

// DefaultTimeQuantum is used when the caller supplies no usable quantum.
const DefaultTimeQuantum = 10

// Options selects the strategy to run. Quantum only applies to RoundRobin;
// values <= 0 fall back to DefaultTimeQuantum.
type Options struct {
	Algorithm Algorithm
	Quantum   int
}

// PerTaskMetrics is derived from a task's segments after the run; it is
// never mutated afterwards.
type PerTaskMetrics struct {
	CompletionTime int `json:"completion_time"`
	TurnaroundTime int `json:"turnaround_time"`
	WaitingTime    int `json:"waiting_time"`
	ResponseTime   int `json:"response_time"`
	Preemptions    int `json:"preemptions"`
}

// AggregateMetrics summarizes one run across all tasks.
type AggregateMetrics struct {
	AverageWaitingTime    float64 `json:"average_waiting_time"`
	AverageTurnAroundTime float64 `json:"average_turn_around_time"`
	AverageResponseTime   float64 `json:"average_response_time"`
	Throughput            float64 `json:"throughput"`
	Makespan              int     `json:"makespan"`
	ContextSwitchCount    int     `json:"context_switch_count"`
}

// Result is the immutable output of one simulation run.
type Result struct {
	Timeline  []core.TimelineSegment
	PerTask   map[int]PerTaskMetrics
	Aggregate AggregateMetrics
}

// job is a strategy's private working copy of one task's mutable state.
// Slice position is the registry position and drives every tie-break.
type job struct {
	id        int
	remaining int
}

func makeJobs(reg *core.Registry) []job {
	tasks := reg.Tasks()
	jobs := make([]job, len(tasks))
	for i, t := range tasks {
		jobs[i] = job{id: t.ID, remaining: t.BurstTotal}
	}
	return jobs
}

// Run executes the selected strategy against the registry. The registry is
// read-only input; every call works on its own remaining-burst counters, so
// concurrent runs against the same registry are safe.
func Run(reg *core.Registry, opts Options) (Result, error) {
	if reg == nil || reg.Len() == 0 {
		return Result{}, core.ErrEmptyRegistry
	}
	switch opts.Algorithm {
	case RoundRobin:
		quantum := opts.Quantum
		if quantum <= 0 {
			quantum = DefaultTimeQuantum
		}
		return scheduleRoundRobin(reg, quantum), nil
	case ShortestRemainingTimeFirst:
		return scheduleShortestRemainingTimeFirst(reg), nil
	default:
		return Result{}, fmt.Errorf("%w: unknown algorithm %q", core.ErrInvalidInput, opts.Algorithm)
	}
}
