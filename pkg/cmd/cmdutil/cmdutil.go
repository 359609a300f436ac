package cmdutil

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/config"
	"github.com/raceiq/raceiq-engine/pkg/track"
)

var (
	sqlLogger *log.Logger
	telemetry *config.Telemetry
)

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// Setup prepares logging, telemetry and the track catalog for a command run.
func Setup(ctx context.Context) error {
	if err := setupLogger(); err != nil {
		return err
	}
	if config.EnableTelemetry {
		log.Info("Enabling telemetry", log.String("endpoint", config.TelemetryEndpoint))
		var err error
		if telemetry, err = config.SetupTelemetry(ctx); err != nil {
			log.Warn("Could not setup telemetry", log.ErrorField(err))
		}
	}
	return loadTrackFile(config.TrackFile)
}

// Teardown flushes logs and telemetry.
func Teardown() {
	if telemetry != nil {
		telemetry.Shutdown()
		telemetry = nil
	}
	//nolint:errcheck // stderr sync fails on some terminals
	log.Sync()
}

func setupLogger() error {
	filter, err := log.WithFilter(config.LogFilter)
	if err != nil {
		return fmt.Errorf("invalid log filter: %w", err)
	}
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1),
			filter)
		sqlLogger = log.New(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1),
			filter)
		sqlLogger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	log.ResetDefault(logger)
	log.Debug("Config:",
		log.String("store", config.Store),
		log.String("boltFile", config.BoltFile),
		log.String("trackFile", config.TrackFile),
	)
	return nil
}

func loadTrackFile(name string) error {
	if name == "" {
		return nil
	}
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open track file: %w", err)
	}
	defer f.Close()
	tracks, err := track.LoadCatalog(f)
	if err != nil {
		return fmt.Errorf("load track file %s: %w", name, err)
	}
	if err := track.Default().Add(tracks...); err != nil {
		return fmt.Errorf("load track file %s: %w", name, err)
	}
	log.Debug("Tracks loaded", log.String("file", name), log.Int("tracks", len(tracks)))
	return nil
}

// WaitTimeout parses the wait-for-services duration. Invalid values fall back to 60s.
func WaitTimeout() time.Duration {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		return 60 * time.Second
	}
	return timeout
}
