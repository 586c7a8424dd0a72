package main

import (
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"schedsim/api"
	"schedsim/config"
	"schedsim/internal/logging"
	"schedsim/internal/sampler"
)

func main() {
	cfg := config.GetSchedulerConfig()
	logg := logging.New("schedsim", cfg.LogLevel)

	smp := sampler.New(sampler.Config{
		ProcPath:        cfg.SamplerProcPath,
		Interval:        time.Duration(cfg.SamplerIntervalMs) * time.Millisecond,
		MaxRounds:       cfg.SamplerMaxRounds,
		ExcludePrefixes: cfg.SamplerExcludePrefixes,
	}, logg)
	handler := api.NewSchedulerHandlerImpl(cfg, smp, logg)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/", handler.Index)
	root := app.Group("/api")

	v1 := root.Group("/v1")
	{
		v1.Get("/rr", handler.RoundRobin)
		v1.Get("/srtf", handler.ShortestRemainingTimeFirst)
		v1.Get("/all", handler.AllAlgorithms)
	}

	logg.Info("listening", slog.Int("port", cfg.Port))
	log.Fatalln(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
}
