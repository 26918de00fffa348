package edit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
	"github.com/misbahsy/video-audio-mcp/internal/storage"
)

// Service executes editing operations. Each call runs to completion
// synchronously; there is no shared mutable state between requests, so the
// transport may serve calls concurrently.
type Service struct {
	runner   *ffmpeg.Runner
	prober   *ffmpeg.Prober
	store    storage.Storage
	logger   *slog.Logger
	defaults Defaults
	// publish uploads successful outputs when the store supports it.
	publish bool
}

// Option configures a Service.
type Option func(*Service)

// WithDefaults overrides the encoding defaults record.
func WithDefaults(d Defaults) Option {
	return func(s *Service) { s.defaults = d }
}

// WithPublishing enables uploading finished outputs through the store.
func WithPublishing(enabled bool) Option {
	return func(s *Service) { s.publish = enabled }
}

// NewService creates a Service.
func NewService(runner *ffmpeg.Runner, prober *ffmpeg.Prober, store storage.Storage, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		runner:   runner,
		prober:   prober,
		store:    store,
		logger:   logger,
		defaults: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HealthCheck probes the engine binary with a version query.
func (s *Service) HealthCheck(ctx context.Context) (string, error) {
	version, err := s.runner.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Server is healthy. Engine: %s", version), nil
}

// execute runs one invocation and classifies the outcome. Environment
// failures (missing binary, timeout) pass through as-is; classified
// failures come back as *EngineExecutionError.
func (s *Service) execute(ctx context.Context, inv ffmpeg.Invocation) error {
	start := time.Now()
	res, err := s.runner.Run(ctx, inv)
	if err != nil {
		return err
	}

	c := ffmpeg.Classify(res, inv.OutputPath)
	s.logger.Debug("engine run finished",
		slog.Int("exit_code", res.ExitCode),
		slog.Bool("success", c.Outcome == ffmpeg.OutcomeSuccess),
		slog.Duration("elapsed", time.Since(start)),
	)
	if c.Outcome != ffmpeg.OutcomeSuccess {
		return &EngineExecutionError{Detail: c.Detail, Stderr: res.Stderr}
	}
	return nil
}

// executeWithFallback tries a stream-copy fast path and, when the engine
// rejects the copy for compatibility reasons, retries exactly once with the
// re-encode invocation. This is the only automatic retry in the system;
// timeouts and missing binaries are never retried.
func (s *Service) executeWithFallback(ctx context.Context, primary, fallback ffmpeg.Invocation) (fellBack bool, err error) {
	err = s.execute(ctx, primary)
	if err == nil {
		return false, nil
	}

	var execErr *EngineExecutionError
	if !errors.As(err, &execErr) || !isCopyIncompatibility(execErr.Stderr) {
		return false, err
	}

	s.logger.Info("stream copy rejected, retrying with re-encode",
		slog.String("detail", execErr.Detail),
	)
	if err := s.execute(ctx, fallback); err != nil {
		return true, err
	}
	return true, nil
}

// finish publishes the output when configured and renders the success
// status string every operation returns.
func (s *Service) finish(ctx context.Context, status, outputPath string) string {
	if !s.publish || outputPath == "" {
		return status
	}
	url, err := s.store.Publish(ctx, outputPath, filepath.Base(outputPath))
	if err != nil {
		if errors.Is(err, storage.ErrPublishNotConfigured) {
			return status
		}
		s.logger.Warn("publishing output failed",
			slog.String("path", outputPath),
			slog.String("error", err.Error()),
		)
		return status + " (publishing failed)"
	}
	return fmt.Sprintf("%s (published to %s)", status, url)
}

// Describe converts an operation error to the caller-facing status string.
// No error propagates past the operation boundary as a fault; everything
// the caller sees is a descriptive sentence.
func Describe(op string, err error) string {
	switch {
	case errors.Is(err, ErrMissingInput),
		errors.Is(err, ErrUnwritableOutput),
		errors.Is(err, ErrInvalidTimeRange),
		errors.Is(err, ErrUnsupportedCombination),
		errors.Is(err, ErrInvalidArgument):
		return fmt.Sprintf("Error: cannot %s: %v", op, err)
	case errors.Is(err, ffmpeg.ErrEngineNotFound),
		errors.Is(err, ffmpeg.ErrEngineTimeout):
		return fmt.Sprintf("Error: %s aborted: %v", op, err)
	default:
		return fmt.Sprintf("Error: %s failed: %v", op, err)
	}
}

// cleanupWorkDir removes a multi-phase operation's intermediates. It runs
// on success and failure alike.
func (s *Service) cleanupWorkDir(ctx context.Context, dir string) {
	if dir == "" {
		return
	}
	// Cleanup must run even when the request context is already cancelled.
	ctx = context.WithoutCancel(ctx)
	if err := s.store.RemoveWorkDir(ctx, dir); err != nil {
		s.logger.Warn("work directory cleanup failed",
			slog.String("dir", dir),
			slog.String("error", err.Error()),
		)
	}
}
