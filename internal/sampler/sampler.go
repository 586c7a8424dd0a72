// Package sampler produces the engine's input by observing the live process
// table: two time-separated snapshots of per-process CPU counters, with the
// positive delta taken as the observed burst.
package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"schedsim/internal/core"
)

// Config controls one sampling session. ProcPath is injectable so tests can
// point the sampler at a fake process tree.
type Config struct {
	ProcPath        string
	Interval        time.Duration
	MaxRounds       int
	ExcludePrefixes []string
}

type Sampler struct {
	cfg Config
	log *slog.Logger

	// Test hook, runs between the two snapshots of a round.
	betweenSnapshots func()
}

func New(cfg Config, log *slog.Logger) *Sampler {
	if cfg.ProcPath == "" {
		cfg.ProcPath = "/proc"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 100 * time.Millisecond
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = 5
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sampler{cfg: cfg, log: log}
}

// procStat is one parsed /proc/<pid>/stat reading.
type procStat struct {
	comm  string
	state string
	utime uint64
	stime uint64
}

// Sample observes the process table until `count` eligible tasks have been
// collected or the round cap is hit. Each round takes two snapshots separated
// by the configured interval; a process is eligible when its utime+stime
// delta is strictly positive, its name does not carry an excluded kernel
// prefix, and it is not an idle kernel thread (state "I"). Eligible processes
// are considered in ascending PID order, so repeated sessions against a
// steady system pick the same set. Returns fewer than `count` tasks when the
// system does not offer enough busy processes.
func (s *Sampler) Sample(ctx context.Context, count int) ([]core.Task, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: process count must be positive", core.ErrInvalidInput)
	}
	if _, err := os.Stat(s.cfg.ProcPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProcUnavailable, s.cfg.ProcPath)
	}

	collected := make([]core.Task, 0, count)
	seen := make(map[int]bool)

	for round := 0; round < s.cfg.MaxRounds && len(collected) < count; round++ {
		before, err := s.snapshot()
		if err != nil {
			return nil, err
		}
		if err := sleepCtx(ctx, s.cfg.Interval); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSampling, err)
		}
		if s.betweenSnapshots != nil {
			s.betweenSnapshots()
		}
		after, err := s.snapshot()
		if err != nil {
			return nil, err
		}

		picked := selectEligible(before, after, s.cfg.ExcludePrefixes, seen, count-len(collected))
		collected = append(collected, picked...)
		s.log.Debug("sampling round done",
			slog.Int("round", round),
			slog.Int("picked", len(picked)),
			slog.Int("collected", len(collected)))
	}

	if len(collected) == 0 {
		return nil, ErrNoEligibleProcesses
	}
	return collected, nil
}

// snapshot reads the stat line of every numeric entry under the proc path.
// Processes that vanish between the listing and the read are skipped.
func (s *Sampler) snapshot() (map[int]procStat, error) {
	entries, err := os.ReadDir(s.cfg.ProcPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcUnavailable, err)
	}
	stats := make(map[int]procStat, len(entries))
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		st, err := parseStat(filepath.Join(s.cfg.ProcPath, e.Name(), "stat"))
		if err != nil {
			continue
		}
		stats[pid] = st
	}
	return stats, nil
}

// selectEligible diffs two snapshots and picks up to `limit` new tasks in
// ascending PID order. Pure function; the Sample loop owns all state.
func selectEligible(before, after map[int]procStat, excludePrefixes []string, seen map[int]bool, limit int) []core.Task {
	pids := make([]int, 0, len(before))
	for pid := range before {
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	tasks := make([]core.Task, 0, limit)
	for _, pid := range pids {
		if len(tasks) >= limit {
			break
		}
		if seen[pid] {
			continue
		}
		prev := before[pid]
		curr, ok := after[pid]
		if !ok {
			continue // process ended between snapshots
		}
		if excluded(prev.comm, excludePrefixes) || curr.state == "I" {
			continue
		}
		delta := int64(curr.utime+curr.stime) - int64(prev.utime+prev.stime)
		if delta <= 0 {
			continue
		}
		seen[pid] = true
		tasks = append(tasks, core.Task{
			ID:         pid,
			Label:      prev.comm,
			Arrival:    0,
			BurstTotal: int(delta),
			UTime:      curr.utime,
			STime:      curr.stime,
			CPUTotal:   curr.utime + curr.stime,
			State:      curr.state,
		})
	}
	return tasks
}

func excluded(comm string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(comm, p) {
			return true
		}
	}
	return false
}

// parseStat extracts comm, state, utime and stime from a stat line. The comm
// field is parenthesized and may itself contain spaces or parentheses, so the
// line is split at the last closing paren rather than on whitespace.
func parseStat(path string) (procStat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return procStat{}, err
	}
	line := string(data)
	open := strings.IndexByte(line, '(')
	end := strings.LastIndexByte(line, ')')
	if open < 0 || end < open {
		return procStat{}, fmt.Errorf("malformed stat line in %s", path)
	}
	comm := line[open+1 : end]

	// Fields after the comm: state is overall field 3, utime 14, stime 15.
	rest := strings.Fields(line[end+1:])
	if len(rest) < 13 {
		return procStat{}, fmt.Errorf("truncated stat line in %s", path)
	}
	utime, err := strconv.ParseUint(rest[11], 10, 64)
	if err != nil {
		return procStat{}, err
	}
	stime, err := strconv.ParseUint(rest[12], 10, 64)
	if err != nil {
		return procStat{}, err
	}
	return procStat{comm: comm, state: rest[0], utime: utime, stime: stime}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
