package launch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"

	"tcs/internal/metric"
	"tcs/internal/model"
)

// Stage names the position of a command within one button press.
type Stage string

const (
	StagePre  Stage = "pre"
	StageMain Stage = "main"
	StagePost Stage = "post"
)

// LaunchError reports a command that could not be started.
type LaunchError struct {
	Item    string
	Stage   Stage
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: %s command %q could not be started: %v", e.Item, e.Stage, e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Launcher runs the pre, main and post commands of a menu item as separate
// child processes. It never changes the working directory of the launcher
// itself; each child is started in the item's directory instead.
type Launcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	counter metric.IncrementalCounter
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithCounter records every launch attempt in c.
func WithCounter(c metric.IncrementalCounter) Option {
	return func(l *Launcher) { l.counter = c }
}

// WithStdio sets the standard streams handed to child processes.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(l *Launcher) { l.SetStdio(stdin, stdout, stderr) }
}

// New creates a Launcher whose children inherit the launcher's standard streams.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		counter: metric.Nop{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes the pre-command, the command and the post-command in order,
// each waiting for the previous one to exit. A command that cannot be
// started is logged and skipped; the rest of the sequence still runs.
// The returned error joins one *LaunchError per command that failed to start.
func (l *Launcher) Run(name string, launch model.Launch) error {
	steps := []struct {
		stage   Stage
		command string
	}{
		{StagePre, launch.PreCommand},
		{StageMain, launch.Command},
		{StagePost, launch.PostCommand},
	}

	var errs []error
	for _, step := range steps {
		if step.command == "" && step.stage != StageMain {
			continue
		}
		if err := l.runOne(name, step.stage, launch.Directory, step.command); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Launcher) runOne(name string, stage Stage, dir, command string) error {
	logger := log.With().Str("item", name).Str("stage", string(stage)).Str("command", command).Logger()

	fail := func(err error) error {
		l.counter.Increment(name, string(stage), metric.ResultLaunchError)
		logger.Error().Err(err).Msg("error calling command")
		return &LaunchError{Item: name, Stage: stage, Command: command, Err: err}
	}

	args, err := Split(command)
	if err != nil {
		return fail(err)
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	logger.Debug().Str("dir", dir).Msg("starting command")
	if err := cmd.Start(); err != nil {
		return fail(err)
	}

	// The exit status is not interpreted beyond logging.
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			l.counter.Increment(name, string(stage), metric.ResultExitNonZero)
			logger.Debug().Int("exit_code", exitErr.ExitCode()).Msg("command exited with non-zero status")
			return nil
		}
		logger.Warn().Err(err).Msg("command finished with error")
	}
	l.counter.Increment(name, string(stage), metric.ResultOK)
	logger.Debug().Msg("command finished")
	return nil
}

// SetStdio replaces the standard streams handed to child processes.
func (l *Launcher) SetStdio(stdin io.Reader, stdout, stderr io.Writer) {
	l.Stdin = stdin
	l.Stdout = stdout
	l.Stderr = stderr
}
