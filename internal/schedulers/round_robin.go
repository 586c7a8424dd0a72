package schedulers

import "schedsim/internal/core"

// scheduleRoundRobin runs the preemptive RR strategy on a virtual clock.
// The ready queue starts with every task in registry order (all arrivals are
// zero, so admission order is registry order) and each dequeue grants at most
// one quantum. Every slice is emitted as its own timeline segment; slices are
// never merged, so context-switch accounting stays true to the run.
func scheduleRoundRobin(reg *core.Registry, quantum int) Result {
	queue := makeJobs(reg)
	timeline := make([]core.TimelineSegment, 0, len(queue))

	clock := 0
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]

		run := quantum
		if j.remaining < run {
			run = j.remaining
		}
		timeline = append(timeline, core.TimelineSegment{TaskID: j.id, Start: clock, End: clock + run})
		clock += run
		j.remaining -= run

		// Preempted tasks go to the tail, behind anything queued meanwhile.
		if j.remaining > 0 {
			queue = append(queue, j)
		}
	}

	return generateAnalytics(reg, timeline)
}
