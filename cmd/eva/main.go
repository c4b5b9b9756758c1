package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TensorKartDev/eva/internal/capture"
	"github.com/TensorKartDev/eva/internal/config"
	"github.com/TensorKartDev/eva/internal/metrics"
	"github.com/TensorKartDev/eva/internal/server"
	"github.com/TensorKartDev/eva/internal/session"
	"github.com/TensorKartDev/eva/internal/transcription"
	"github.com/TensorKartDev/eva/internal/vad"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = config.Default()
		} else {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			return 1
		}
	}
	cfg.ApplyEnvOverrides()

	logger := initLogger(cfg.Logging)
	logger.Info("Session starting",
		slog.Int("sample_rate", cfg.Audio.SampleRate),
		slog.Int("frames_per_buffer", cfg.Audio.FramesPerBuffer),
		slog.Duration("frame_duration", cfg.Audio.FrameDuration()),
		slog.Float64("trigger_threshold_dbfs", cfg.VAD.TriggerThresholdDBFS),
		slog.Int("trigger_frames", cfg.VAD.TriggerFrames),
		slog.Int("release_frames", cfg.VAD.ReleaseFrames),
	)

	fmt.Println("Listing input devices...")
	capture.ListDevices()

	// Transcription sink: a failed engine load downgrades the session to
	// VAD-only mode, decided once and never re-evaluated per frame.
	var sink vad.Sink = transcription.Disabled{}
	if cfg.Transcription.Enabled {
		engine, err := transcription.New(transcription.Config{
			ModelPath:  cfg.Transcription.ModelPath,
			SampleRate: cfg.Audio.SampleRate,
		}, logger)
		if err != nil {
			logger.Warn("Transcription disabled", slog.String("error", err.Error()))
			fmt.Printf("Transcription disabled: %v\n", err)
		} else {
			sink = engine
			fmt.Printf("Transcription enabled using model: %s\n", cfg.Transcription.ModelPath)
			if closer, ok := engine.(io.Closer); ok {
				defer closer.Close()
			}
		}
	}

	if dir := cfg.Transcription.SaveSegmentsDir; dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Warn("Segment dump disabled", slog.String("dir", dir), slog.String("error", err.Error()))
		} else {
			sink = session.NewSegmentRecorder(sink, dir, cfg.Audio.SampleRate, logger)
		}
	}

	detector, err := vad.NewDetector(vad.Config{
		TriggerThresholdDBFS: cfg.VAD.TriggerThresholdDBFS,
		TriggerFrames:        cfg.VAD.TriggerFrames,
		ReleaseFrames:        cfg.VAD.ReleaseFrames,
	}, sink, logger)
	if err != nil {
		logger.Error("Failed to create detector", slog.String("error", err.Error()))
		return 1
	}

	var source capture.Source
	if cfg.Audio.InputWAV != "" {
		source = capture.NewFileSource(cfg.Audio.InputWAV, captureConfig(cfg))
	} else {
		source = capture.NewDeviceSource(captureConfig(cfg))
	}

	if err := source.Start(); err != nil {
		logger.Error("Failed to start audio capture", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Failed to start audio capture: %v\n", err)
		return 1
	}
	defer source.Stop()

	appMetrics := metrics.New()
	runner := session.NewRunner(logger, source, detector, appMetrics, os.Stdout)

	if cfg.HTTP.Enabled {
		httpServer := server.NewHTTPServer(cfg.HTTP, logger, runner)
		if err := httpServer.Start(); err != nil {
			logger.Error("Failed to start HTTP server", slog.String("error", err.Error()))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := httpServer.Stop(shutdownCtx); err != nil {
					logger.Error("Error stopping HTTP server", slog.String("error", err.Error()))
				}
			}()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Unblock the pending read when the signal arrives so the loop can
	// observe the cancellation.
	go func() {
		<-ctx.Done()
		source.Stop()
	}()

	fmt.Println("\nRunning... Press Ctrl+C to quit.")
	if err := runner.Run(ctx); err != nil {
		logger.Error("Session loop failed", slog.String("error", err.Error()))
		return 1
	}

	stats := runner.Stats()
	logger.Info("Final session statistics",
		slog.Uint64("frames_read", stats.FramesRead),
		slog.Uint64("empty_reads", stats.EmptyReads),
		slog.Uint64("speech_detections", stats.Detector.SpeechDetections),
		slog.Uint64("segments_completed", stats.Detector.SegmentsCompleted),
	)

	fmt.Println("Exiting.")
	return 0
}

// captureConfig maps the audio section onto the capture configuration.
func captureConfig(cfg *config.Config) capture.Config {
	return capture.Config{
		SampleRate:      cfg.Audio.SampleRate,
		Channels:        cfg.Audio.Channels,
		FramesPerBuffer: cfg.Audio.FramesPerBuffer,
		Device:          cfg.Audio.Device,
	}
}

// initLogger creates the structured logger from the logging configuration.
func initLogger(cfg config.LoggingConfig) *slog.Logger {
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
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var output *os.File
	switch cfg.Output {
	case "stdout":
		output = os.Stdout
	case "stderr", "":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stderr\n", cfg.Output, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
