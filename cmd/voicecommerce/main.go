package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MaJuniors/voice-commerce/internal/api"
	"github.com/MaJuniors/voice-commerce/internal/audio"
	"github.com/MaJuniors/voice-commerce/internal/capture"
	"github.com/MaJuniors/voice-commerce/internal/config"
	"github.com/MaJuniors/voice-commerce/internal/metrics"
	"github.com/MaJuniors/voice-commerce/internal/pipeline"
	"github.com/MaJuniors/voice-commerce/internal/playback"
	"github.com/MaJuniors/voice-commerce/internal/present"
)

const (
	defaultConfigPath = "configs/config.yaml"
	serviceName       = "voice-commerce"
	serviceVersion    = "1.0.0"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger based on configuration
	logger := initLogger(cfg.Logging)

	logger.Info("Client starting",
		slog.String("service", serviceName),
		slog.String("version", serviceVersion),
		slog.String("config_path", *configPath),
	)

	logger.Info("Configuration loaded",
		slog.String("api_base_url", cfg.API.BaseURL),
		slog.Int("search_limit", cfg.API.SearchLimit),
		slog.Int("sample_rate", cfg.Audio.SampleRate),
		slog.Int("frames_per_block", cfg.Audio.FramesPerBlock),
		slog.Duration("block_duration", cfg.Audio.GetBlockDuration()),
		slog.Bool("playback_enabled", cfg.Playback.Enabled),
		slog.String("log_level", cfg.Logging.Level),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Prometheus metrics (if enabled)
	var appMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		appMetrics = metrics.NewMetrics()
		go serveMetrics(logger, cfg.Metrics)
		logger.Info("Prometheus metrics initialized",
			slog.String("address", fmt.Sprintf("%s:%d", cfg.Metrics.Address, cfg.Metrics.Port)),
		)
	}

	// Initialize backend client
	backend, err := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.GetTimeoutDuration(),
	})
	if err != nil {
		logger.Error("Failed to create backend client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize playback
	var player *playback.Player
	if cfg.Playback.Enabled {
		player = playback.NewPlayer(logger, cfg.Playback.Command)
	} else {
		player = playback.NewDisabledPlayer(logger)
	}
	beeper := playback.NewBeeper(logger, player, cfg.Playback.CuesEnabled)

	// Initialize history view and response pipeline
	presenter := present.NewPresenter(os.Stdout)
	pipe := pipeline.NewOrchestrator(logger, backend, player, presenter, appMetrics, pipeline.Config{
		SearchLimit: cfg.API.SearchLimit,
	})

	// Pending pipeline runs are awaited before exit
	var runs sync.WaitGroup

	handler := func(session capture.Session) {
		if appMetrics != nil {
			appMetrics.RecordSessionCompleted(session.Duration().Seconds(), len(session.Samples))
		}

		wavData, err := audio.EncodeWAV(session.Samples, session.SampleRate)
		if err != nil {
			logger.Error("Failed to encode session audio", slog.String("error", err.Error()))
			presenter.Log("Rekaman tidak dapat diproses", present.StyleError)
			return
		}

		if appMetrics != nil {
			appMetrics.RecordPayload(len(wavData))
		}

		logger.Info("Session encoded",
			slog.String("session_id", session.ID),
			slog.Int("wav_bytes", len(wavData)),
			slog.Duration("duration", session.Duration()),
		)

		runs.Add(1)
		go func() {
			defer runs.Done()
			pipe.Run(ctx, wavData)
		}()
	}

	// Initialize the recording state machine
	device := capture.NewPortAudioDevice(capture.DeviceConfig{
		SampleRate:     cfg.Audio.SampleRate,
		FramesPerBlock: cfg.Audio.FramesPerBlock,
	})
	recorder, err := capture.NewRecorder(logger, device, capture.Config{
		SampleRate: cfg.Audio.SampleRate,
	}, handler, beeper)
	if err != nil {
		logger.Error("Failed to create recorder", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	presenter.Log("Tekan Enter untuk mulai/berhenti merekam, 'q' lalu Enter untuk keluar.", present.StyleInfo)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

loop:
	for {
		select {
		case sig := <-sigChan:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			break loop

		case line, ok := <-lines:
			if !ok {
				logger.Info("Input closed, shutting down")
				break loop
			}

			switch strings.TrimSpace(line) {
			case "":
				if recorder.State() == capture.StateRecording {
					recorder.Stop()
					presenter.Log("Rekaman selesai.", present.StyleMuted)
				} else {
					if err := recorder.Start(); err != nil {
						presenter.Log("Mikrofon tidak dapat diakses.", present.StyleError)
						continue
					}
					if appMetrics != nil {
						appMetrics.RecordSessionStarted()
					}
					presenter.Log("Merekam... tekan Enter untuk berhenti.", present.StyleInfo)
				}
			case "q", "quit", "exit":
				break loop
			default:
				presenter.Log("Perintah tidak dikenal. Enter untuk merekam, 'q' untuk keluar.", present.StyleMuted)
			}
		}
	}

	logger.Info("Starting graceful shutdown...")

	// An active session is finished first so its audio is not lost
	recorder.Stop()
	cancel()

	done := make(chan struct{})
	go func() {
		runs.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		logger.Warn("Timed out waiting for pending pipeline runs")
	}

	logger.Info("Client stopped")
}

// serveMetrics exposes the Prometheus metrics endpoint
func serveMetrics(logger *slog.Logger, cfg config.MetricsConfig) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server failed", slog.String("error", err.Error()))
	}
}

// initLogger creates and configures the structured logger based on configuration
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo // default fallback
	}

	// Configure handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug, // Add source info for debug level
	}

	// Determine output destination
	var output *os.File
	switch cfg.Output {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		// Assume it's a file path
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stderr\n", cfg.Output, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	// Create handler based on format
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	case "text", "":
		handler = slog.NewTextHandler(output, opts)
	default:
		// Default to text format
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
