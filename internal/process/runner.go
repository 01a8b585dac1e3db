package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Config holds configuration for the managed build tool process.
type Config struct {
	// Name is a human-readable identifier for logging.
	Name string

	// Binary is the path to the executable.
	Binary string

	// Args are command-line arguments to pass to the binary.
	Args []string

	// Env are additional environment variables (key=value format).
	// If nil, inherits from the parent process.
	Env []string

	// WorkDir is the working directory for the process.
	// If empty, inherits from the parent process.
	WorkDir string

	// Stdout and Stderr receive the child's output. They default to the
	// parent's streams so the serve tool's own logs stay visible.
	Stdout io.Writer
	Stderr io.Writer

	// RestartOnFailure restarts the child when it exits with an error
	// while the context is still live.
	RestartOnFailure bool

	// RestartDelay is the time to wait before restarting after a failure.
	RestartDelay time.Duration

	// MaxRestartAttempts limits restart attempts. 0 means unlimited.
	MaxRestartAttempts int

	// GracefulTimeout is how long to wait after SIGTERM before SIGKILL.
	GracefulTimeout time.Duration
}

// Logger defines the logging interface for the runner.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Runner runs one child process to completion, restarting it within the
// configured bounds. Run blocks; the runner holds no state a second call
// could trip over, but runs are expected to be sequential.
type Runner struct {
	config Config
	logger Logger
}

// NewRunner creates a runner with the given configuration, applying
// defaults for zero values.
func NewRunner(cfg Config) *Runner {
	if cfg.RestartDelay == 0 {
		cfg.RestartDelay = 5 * time.Second
	}
	if cfg.GracefulTimeout == 0 {
		cfg.GracefulTimeout = 10 * time.Second
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	return &Runner{
		config: cfg,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the runner.
func (r *Runner) SetLogger(logger Logger) {
	r.logger = logger
}

// Run starts the child and blocks until it exits or ctx is cancelled.
//
// Context cancellation is the normal way to stop a serve process, so it
// results in a nil error once the child has been shut down. A child that
// exits with an error is restarted when configured to, up to
// MaxRestartAttempts; the last exit error is returned when restarts are
// exhausted or disabled.
func (r *Runner) Run(ctx context.Context) error {
	attempt := 0
	for {
		err := r.runOnce(ctx)
		if ctx.Err() != nil {
			// Interrupted: the child was terminated on request.
			return nil
		}
		if err == nil {
			return nil
		}

		if !r.config.RestartOnFailure {
			return err
		}
		attempt++
		if r.config.MaxRestartAttempts > 0 && attempt > r.config.MaxRestartAttempts {
			return fmt.Errorf("%s: giving up after %d restart attempts: %w",
				r.config.Name, r.config.MaxRestartAttempts, err)
		}

		r.logger.Warn("process exited unexpectedly, restarting",
			"name", r.config.Name,
			"attempt", attempt,
			"delay", r.config.RestartDelay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(r.config.RestartDelay):
		}
	}
}

// runOnce starts the child once and waits for exit or cancellation.
func (r *Runner) runOnce(ctx context.Context) error {
	r.logger.Info("starting process",
		"name", r.config.Name,
		"binary", r.config.Binary,
		"args", r.config.Args,
	)

	cmd := exec.Command(r.config.Binary, r.config.Args...)

	// A new process group lets shutdown signal the tool and any children
	// it spawns (watchers, reload helpers) in one go.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if r.config.Env != nil {
		cmd.Env = append(os.Environ(), r.config.Env...)
	}
	if r.config.WorkDir != "" {
		cmd.Dir = r.config.WorkDir
	}
	cmd.Stdout = r.config.Stdout
	cmd.Stderr = r.config.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", r.config.Name, err)
	}
	r.logger.Info("process started", "name", r.config.Name, "pid", cmd.Process.Pid)

	exitCh := make(chan error, 1)
	go func() {
		exitCh <- cmd.Wait()
	}()

	select {
	case err := <-exitCh:
		if err != nil {
			return fmt.Errorf("%s exited: %w", r.config.Name, err)
		}
		return nil
	case <-ctx.Done():
		return r.terminate(cmd, exitCh)
	}
}

// terminate stops the child's process group: SIGTERM first, SIGKILL after
// the graceful timeout.
func (r *Runner) terminate(cmd *exec.Cmd, exitCh <-chan error) error {
	pid := cmd.Process.Pid
	r.logger.Info("stopping process", "name", r.config.Name, "pid", pid)

	// Negative PID signals the whole group created via Setpgid.
	if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil {
		if !errors.Is(err, syscall.ESRCH) {
			r.logger.Warn("failed to send SIGTERM to process group",
				"name", r.config.Name, "error", err)
		}
	}

	select {
	case <-exitCh:
		r.logger.Info("process stopped gracefully", "name", r.config.Name)
		return nil
	case <-time.After(r.config.GracefulTimeout):
		r.logger.Warn("graceful shutdown timeout, sending SIGKILL",
			"name", r.config.Name,
			"timeout", r.config.GracefulTimeout,
		)
	}

	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		if !errors.Is(err, syscall.ESRCH) {
			return fmt.Errorf("killing process group %s: %w", r.config.Name, err)
		}
	}
	<-exitCh
	r.logger.Info("process killed", "name", r.config.Name)
	return nil
}
