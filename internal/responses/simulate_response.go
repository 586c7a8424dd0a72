package responses

import "schedsim/internal/core"

// ProcessInput echoes one sampled process back to the caller, raw counters
// included, so the presentation layer can show what fed the simulation.
type ProcessInput struct {
	PID         int    `json:"pid"`
	Name        string `json:"name"`
	ArrivalTime int    `json:"arrival_time"`
	BurstObs    int    `json:"burst_obs"`
	UTime       uint64 `json:"utime"`
	STime       uint64 `json:"stime"`
	CPUTotal    uint64 `json:"cpu_total"`
	State       string `json:"state"`
}

type TaskMetricsResponse struct {
	CompletionTime int `json:"completion_time"`
	TurnaroundTime int `json:"turnaround_time"`
	WaitingTime    int `json:"waiting_time"`
	ResponseTime   int `json:"response_time"`
	Preemptions    int `json:"preemptions"`
}

type AggregateMetricsResponse struct {
	AverageWaitingTime    float64 `json:"average_waiting_time"`
	AverageTurnAroundTime float64 `json:"average_turn_around_time"`
	AverageResponseTime   float64 `json:"average_response_time"`
	Throughput            float64 `json:"throughput"`
	Makespan              int     `json:"makespan"`
	ContextSwitchCount    int     `json:"context_switch_count"`
}

// AlgorithmResult is one strategy's full output: the ordered timeline, the
// per-task metrics keyed by pid, and the aggregate record.
type AlgorithmResult struct {
	Algorithm string                      `json:"algorithm"`
	Quantum   int                         `json:"quantum,omitempty"`
	Timeline  []core.TimelineSegment      `json:"timeline"`
	PerTask   map[int]TaskMetricsResponse `json:"per_task"`
	Aggregate AggregateMetricsResponse    `json:"aggregate"`
}

// SimulateResponse is the combined payload for one simulation request.
// RR and SRTF are both present on /all; single-algorithm endpoints leave the
// other nil.
type SimulateResponse struct {
	RunID     string           `json:"run_id"`
	Processes []ProcessInput   `json:"processes"`
	RR        *AlgorithmResult `json:"rr,omitempty"`
	SRTF      *AlgorithmResult `json:"srtf,omitempty"`
}
