package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schedsim/config"
	"schedsim/internal/core"
	"schedsim/internal/requests"
	"schedsim/internal/responses"
	"schedsim/internal/sampler"
	"schedsim/internal/schedulers"
)

// TaskSampler produces the engine's input from the live process table.
type TaskSampler interface {
	Sample(ctx context.Context, count int) ([]core.Task, error)
}

type SchedulerHandler interface {
	RoundRobin(ctx *fiber.Ctx) error
	ShortestRemainingTimeFirst(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config  *config.SchedulerConfig
	sampler TaskSampler
	log     *slog.Logger
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig, sampler TaskSampler, log *slog.Logger) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config, sampler: sampler, log: log}
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.simulate(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) ShortestRemainingTimeFirst(ctx *fiber.Ctx) error {
	return s.simulate(ctx, schedulers.ShortestRemainingTimeFirst)
}

// AllAlgorithms samples once and runs both strategies against the same
// registry snapshot. The runs are independent pure computations over private
// working copies, so they execute concurrently.
func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request, quantum, err := s.parseRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	reg, processes, err := s.buildRegistry(ctx, request.Count)
	if err != nil {
		return s.failSimulation(ctx, err)
	}

	var rr, srtf schedulers.Result
	var rrErr, srtfErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		rr, rrErr = schedulers.Run(reg, schedulers.Options{Algorithm: schedulers.RoundRobin, Quantum: quantum})
	}()
	go func() {
		defer wg.Done()
		srtf, srtfErr = schedulers.Run(reg, schedulers.Options{Algorithm: schedulers.ShortestRemainingTimeFirst})
	}()
	wg.Wait()
	if err := errors.Join(rrErr, srtfErr); err != nil {
		return s.failSimulation(ctx, err)
	}

	response := responses.SimulateResponse{
		RunID:     uuid.NewString(),
		Processes: processes,
		RR:        toAlgorithmResult(schedulers.RoundRobin, quantum, rr),
		SRTF:      toAlgorithmResult(schedulers.ShortestRemainingTimeFirst, 0, srtf),
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) simulate(ctx *fiber.Ctx, algorithm schedulers.Algorithm) error {
	request, quantum, err := s.parseRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	reg, processes, err := s.buildRegistry(ctx, request.Count)
	if err != nil {
		return s.failSimulation(ctx, err)
	}

	opts := schedulers.Options{Algorithm: algorithm}
	if algorithm == schedulers.RoundRobin {
		opts.Quantum = quantum
	}
	result, err := schedulers.Run(reg, opts)
	if err != nil {
		return s.failSimulation(ctx, err)
	}

	response := responses.SimulateResponse{
		RunID:     uuid.NewString(),
		Processes: processes,
	}
	switch algorithm {
	case schedulers.RoundRobin:
		response.RR = toAlgorithmResult(algorithm, quantum, result)
	case schedulers.ShortestRemainingTimeFirst:
		response.SRTF = toAlgorithmResult(algorithm, 0, result)
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) parseRequest(ctx *fiber.Ctx) (requests.SimulateRequest, int, error) {
	var request requests.SimulateRequest
	if err := ctx.QueryParser(&request); err != nil {
		return request, 0, errors.New("invalid request format")
	}
	if request.Count <= 0 {
		return request, 0, errors.New("count must be a positive integer")
	}
	quantum := request.Quantum
	if quantum <= 0 {
		quantum = s.config.RoundRobinTimeQuantum
	}
	return request, quantum, nil
}

func (s *SchedulerHandlerImpl) buildRegistry(ctx *fiber.Ctx, count int) (*core.Registry, []responses.ProcessInput, error) {
	tasks, err := s.sampler.Sample(ctx.UserContext(), count)
	if err != nil {
		return nil, nil, err
	}
	reg, err := core.NewRegistry(tasks)
	if err != nil {
		return nil, nil, err
	}

	processes := make([]responses.ProcessInput, 0, len(tasks))
	for _, t := range tasks {
		processes = append(processes, responses.ProcessInput{
			PID:         t.ID,
			Name:        t.Label,
			ArrivalTime: t.Arrival,
			BurstObs:    t.BurstTotal,
			UTime:       t.UTime,
			STime:       t.STime,
			CPUTotal:    t.CPUTotal,
			State:       t.State,
		})
	}
	return reg, processes, nil
}

func (s *SchedulerHandlerImpl) failSimulation(ctx *fiber.Ctx, err error) error {
	s.log.Warn("simulation request failed", slog.String("error", err.Error()))
	switch {
	case errors.Is(err, sampler.ErrSampling):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, core.ErrInvalidInput):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "can not process request"})
	}
}

func badRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func toAlgorithmResult(algorithm schedulers.Algorithm, quantum int, result schedulers.Result) *responses.AlgorithmResult {
	perTask := make(map[int]responses.TaskMetricsResponse, len(result.PerTask))
	for id, m := range result.PerTask {
		perTask[id] = responses.TaskMetricsResponse{
			CompletionTime: m.CompletionTime,
			TurnaroundTime: m.TurnaroundTime,
			WaitingTime:    m.WaitingTime,
			ResponseTime:   m.ResponseTime,
			Preemptions:    m.Preemptions,
		}
	}
	return &responses.AlgorithmResult{
		Algorithm: string(algorithm),
		Quantum:   quantum,
		Timeline:  result.Timeline,
		PerTask:   perTask,
		Aggregate: responses.AggregateMetricsResponse{
			AverageWaitingTime:    result.Aggregate.AverageWaitingTime,
			AverageTurnAroundTime: result.Aggregate.AverageTurnAroundTime,
			AverageResponseTime:   result.Aggregate.AverageResponseTime,
			Throughput:            result.Aggregate.Throughput,
			Makespan:              result.Aggregate.Makespan,
			ContextSwitchCount:    result.Aggregate.ContextSwitchCount,
		},
	}
}
