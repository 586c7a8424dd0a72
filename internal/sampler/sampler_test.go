package sampler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedsim/internal/core"
)

func writeStat(t *testing.T, root string, pid int, comm, state string, utime, stime uint64) {
	t.Helper()
	dir := filepath.Join(root, fmt.Sprint(pid))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	// Layout of /proc/<pid>/stat: pid (comm) state ppid pgrp session tty
	// tpgid flags minflt cminflt majflt cmajflt utime stime ...
	line := fmt.Sprintf("%d (%s) %s 1 1 1 0 -1 4194304 100 0 0 0 %d %d 0 0 20 0 1 0 100 1000000 100 18446744073709551615",
		pid, comm, state, utime, stime)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(line), 0o644))
}

func TestParseStat(t *testing.T) {
	root := t.TempDir()
	writeStat(t, root, 42, "some proc (v2)", "S", 123, 45)

	st, err := parseStat(filepath.Join(root, "42", "stat"))
	require.NoError(t, err)
	assert.Equal(t, "some proc (v2)", st.comm)
	assert.Equal(t, "S", st.state)
	assert.Equal(t, uint64(123), st.utime)
	assert.Equal(t, uint64(45), st.stime)
}

func TestParseStatRejectsMalformedLine(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "stat")
	require.NoError(t, os.WriteFile(path, []byte("no parens here"), 0o644))

	_, err := parseStat(path)
	require.Error(t, err)
}

func TestSelectEligible(t *testing.T) {
	before := map[int]procStat{
		10: {comm: "busy", state: "R", utime: 100, stime: 50},
		11: {comm: "idle", state: "S", utime: 40, stime: 10},
		12: {comm: "kworker/0:1", state: "R", utime: 5, stime: 5},
		13: {comm: "gone", state: "R", utime: 1, stime: 1},
		14: {comm: "kthread-idle", state: "R", utime: 2, stime: 2},
	}
	after := map[int]procStat{
		10: {comm: "busy", state: "R", utime: 108, stime: 52},   // delta 10
		11: {comm: "idle", state: "S", utime: 40, stime: 10},    // delta 0
		12: {comm: "kworker/0:1", state: "R", utime: 9, stime: 9}, // excluded prefix
		14: {comm: "kthread-idle", state: "I", utime: 6, stime: 6}, // idle kernel thread
	}

	tasks := selectEligible(before, after, []string{"kworker", "rcu", "kthreadd"}, map[int]bool{}, 5)

	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, 10, task.ID)
	assert.Equal(t, "busy", task.Label)
	assert.Equal(t, 0, task.Arrival)
	assert.Equal(t, 10, task.BurstTotal)
	assert.Equal(t, uint64(160), task.CPUTotal)
	assert.Equal(t, "R", task.State)
}

func TestSelectEligiblePicksLowestPIDsFirst(t *testing.T) {
	before := map[int]procStat{}
	after := map[int]procStat{}
	for pid := 30; pid >= 20; pid-- {
		before[pid] = procStat{comm: "p", state: "R", utime: 0, stime: 0}
		after[pid] = procStat{comm: "p", state: "R", utime: 3, stime: 0}
	}

	tasks := selectEligible(before, after, nil, map[int]bool{}, 3)

	require.Len(t, tasks, 3)
	assert.Equal(t, []int{20, 21, 22}, []int{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestSelectEligibleSkipsAlreadySeen(t *testing.T) {
	before := map[int]procStat{20: {comm: "p", state: "R"}}
	after := map[int]procStat{20: {comm: "p", state: "R", utime: 3}}
	seen := map[int]bool{20: true}

	assert.Empty(t, selectEligible(before, after, nil, seen, 5))
}

func TestSampleNoEligibleProcesses(t *testing.T) {
	root := t.TempDir()
	// Static counters across both snapshots: delta 0, nothing eligible.
	writeStat(t, root, 50, "quiet", "S", 10, 10)

	s := New(Config{ProcPath: root, Interval: time.Millisecond, MaxRounds: 2}, nil)
	_, err := s.Sample(context.Background(), 3)
	require.ErrorIs(t, err, ErrNoEligibleProcesses)
	require.ErrorIs(t, err, ErrSampling)
}

func TestSampleProcUnavailable(t *testing.T) {
	s := New(Config{ProcPath: filepath.Join(t.TempDir(), "missing"), Interval: time.Millisecond}, nil)
	_, err := s.Sample(context.Background(), 1)
	require.ErrorIs(t, err, ErrProcUnavailable)
}

func TestSampleRejectsNonPositiveCount(t *testing.T) {
	s := New(Config{ProcPath: t.TempDir(), Interval: time.Millisecond}, nil)
	_, err := s.Sample(context.Background(), 0)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSampleHonorsContextCancellation(t *testing.T) {
	root := t.TempDir()
	writeStat(t, root, 60, "p", "R", 1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(Config{ProcPath: root, Interval: time.Hour, MaxRounds: 1}, nil)
	_, err := s.Sample(ctx, 1)
	require.ErrorIs(t, err, ErrSampling)
}

func TestSampleCollectsChangingProcess(t *testing.T) {
	root := t.TempDir()
	writeStat(t, root, 70, "worker", "R", 100, 20)

	s := New(Config{ProcPath: root, Interval: time.Millisecond, MaxRounds: 1}, nil)
	// Bump the counters between the two snapshots of the round.
	s.betweenSnapshots = func() {
		writeStat(t, root, 70, "worker", "R", 112, 23)
	}

	tasks, err := s.Sample(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 70, tasks[0].ID)
	assert.Equal(t, 15, tasks[0].BurstTotal)
}
