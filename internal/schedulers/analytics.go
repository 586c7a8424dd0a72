package schedulers

import "schedsim/internal/core"

// generateAnalytics derives the per-task and aggregate metrics from a
// completed timeline. Pure function of its inputs: completion time is the end
// of a task's last segment, response time the start of its first, and
// preemptions the number of times a task gave up the CPU before finishing.
func generateAnalytics(reg *core.Registry, timeline []core.TimelineSegment) Result {
	tasks := reg.Tasks()
	perTask := make(map[int]PerTaskMetrics, len(tasks))

	firstStart := make(map[int]int, len(tasks))
	lastEnd := make(map[int]int, len(tasks))
	segments := make(map[int]int, len(tasks))
	for _, seg := range timeline {
		if _, seen := firstStart[seg.TaskID]; !seen {
			firstStart[seg.TaskID] = seg.Start
		}
		lastEnd[seg.TaskID] = seg.End
		segments[seg.TaskID]++
	}

	var waitingSum, turnaroundSum, responseSum int
	for _, t := range tasks {
		completion := lastEnd[t.ID]
		turnaround := completion - t.Arrival
		waiting := turnaround - t.BurstTotal
		response := firstStart[t.ID] - t.Arrival

		perTask[t.ID] = PerTaskMetrics{
			CompletionTime: completion,
			TurnaroundTime: turnaround,
			WaitingTime:    waiting,
			ResponseTime:   response,
			Preemptions:    segments[t.ID] - 1,
		}
		waitingSum += waiting
		turnaroundSum += turnaround
		responseSum += response
	}

	agg := AggregateMetrics{}
	if n := len(tasks); n > 0 {
		agg.AverageWaitingTime = float64(waitingSum) / float64(n)
		agg.AverageTurnAroundTime = float64(turnaroundSum) / float64(n)
		agg.AverageResponseTime = float64(responseSum) / float64(n)
	}
	if len(timeline) > 0 {
		agg.Makespan = timeline[len(timeline)-1].End
	}
	if agg.Makespan > 0 {
		agg.Throughput = float64(len(tasks)) / float64(agg.Makespan)
	}
	agg.ContextSwitchCount = countContextSwitches(timeline)

	return Result{Timeline: timeline, PerTask: perTask, Aggregate: agg}
}

// countContextSwitches counts adjacent segment pairs whose task differs.
// Back-to-back segments of the same task are not a switch.
func countContextSwitches(timeline []core.TimelineSegment) int {
	switches := 0
	for i := 1; i < len(timeline); i++ {
		if timeline[i].TaskID != timeline[i-1].TaskID {
			switches++
		}
	}
	return switches
}
