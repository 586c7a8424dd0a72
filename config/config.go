package config

import (
	"errors"
	"log"
	"sync"

	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Port                   int
	LogLevel               string
	RoundRobinTimeQuantum  int
	SamplerIntervalMs      int
	SamplerMaxRounds       int
	SamplerProcPath        string
	SamplerExcludePrefixes []string
}

var once sync.Once
var config *SchedulerConfig

func GetSchedulerConfig() *SchedulerConfig {
	once.Do(func() {
		config = loadConfig("./")
	})
	return config
}

// loadConfig reads config.yaml from the given path. Every key has a default,
// so a missing file is fine; a malformed one is fatal.
func loadConfig(path string) *SchedulerConfig {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetDefault("port", 9095)
	v.SetDefault("log_level", "info")
	v.SetDefault("scheduler.round_robin.time_quantum", 10)
	v.SetDefault("sampler.interval_ms", 100)
	v.SetDefault("sampler.max_rounds", 5)
	v.SetDefault("sampler.proc_path", "/proc")
	v.SetDefault("sampler.exclude_prefixes", []string{"kworker", "rcu", "kthreadd"})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalln(err)
		}
	}

	return &SchedulerConfig{
		Port:                   v.GetInt("port"),
		LogLevel:               v.GetString("log_level"),
		RoundRobinTimeQuantum:  v.GetInt("scheduler.round_robin.time_quantum"),
		SamplerIntervalMs:      v.GetInt("sampler.interval_ms"),
		SamplerMaxRounds:       v.GetInt("sampler.max_rounds"),
		SamplerProcPath:        v.GetString("sampler.proc_path"),
		SamplerExcludePrefixes: v.GetStringSlice("sampler.exclude_prefixes"),
	}
}
