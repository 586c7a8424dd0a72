package schedulers

import "schedsim/internal/core"

// scheduleShortestRemainingTimeFirst runs preemptive SRTF as a decision-point
// loop: at every scheduling event it recomputes the task with the smallest
// remaining burst (ties broken by registry order) and runs it until the next
// event. With every task ready at time zero no waiting task can undercut the
// running one, so the horizon is always the pick's own remaining burst and
// each pick runs to completion in a single segment; the loop still reselects
// from scratch at every event rather than sorting once up front.
func scheduleShortestRemainingTimeFirst(reg *core.Registry) Result {
	jobs := makeJobs(reg)
	timeline := make([]core.TimelineSegment, 0, len(jobs))

	clock := 0
	for {
		pick := -1
		for i := range jobs {
			if jobs[i].remaining == 0 {
				continue
			}
			if pick < 0 || jobs[i].remaining < jobs[pick].remaining {
				pick = i
			}
		}
		if pick < 0 {
			break
		}

		// Next event horizon: completion of the pick, or the first moment
		// another task would hold a strictly smaller remaining burst. No
		// arrivals happen after time zero, so only completion remains.
		horizon := jobs[pick].remaining

		timeline = append(timeline, core.TimelineSegment{TaskID: jobs[pick].id, Start: clock, End: clock + horizon})
		clock += horizon
		jobs[pick].remaining -= horizon
	}

	return generateAnalytics(reg, timeline)
}
