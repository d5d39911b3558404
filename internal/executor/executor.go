// Package executor runs a single shell command to completion, capturing its
// exit status and both output streams. While the command runs a progress
// indicator ticks on the console; it is cancelled and reaped on every exit
// path before Run returns.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/kaiobuu/kaioagent/internal/console"

	"github.com/rs/zerolog/log"
)

const defaultTickInterval = 500 * time.Millisecond

// Result is the outcome of one completed command. A nonzero ReturnCode is a
// completed-but-failed execution, not an error.
type Result struct {
	ReturnCode int
	Stdout     string
	Stderr     string
}

// Data maps the result into the response shape sent to the controller.
func (r *Result) Data() map[string]any {
	return map[string]any{
		"return_code": r.ReturnCode,
		"stdout":      r.Stdout,
		"stderr":      r.Stderr,
	}
}

type Executor struct {
	// WorkDir roots every command; it is the agent-owned workspace, never the
	// agent's own installation directory.
	WorkDir string

	// Shell overrides shell selection, used by tests. Empty picks the best
	// available shell.
	Shell string

	// TickInterval overrides the progress indicator period, used by tests.
	TickInterval time.Duration

	console *console.Console
}

func New(workDir string, cons *console.Console) *Executor {
	return &Executor{
		WorkDir: workDir,
		console: cons,
	}
}

// Run executes the command text through the shell and blocks until it
// completes. Only the inability to spawn the process at all is an error;
// command failure is reported through Result.ReturnCode.
func (e *Executor) Run(ctx context.Context, command string) (*Result, error) {
	log.Info().Msgf("executor: running command: %s", command)

	shell := e.Shell
	if shell == "" {
		shell = pickShell()
	}
	if shell == "" {
		return nil, errors.New("no usable shell found")
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Dir = e.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.console.CommandRunning(command)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting command: %w", err)
	}

	// The indicator runs for exactly as long as the subprocess; cancel and
	// join it before looking at the outcome so no ticker outlives the call.
	tickCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.tickLoop(tickCtx)
	}()

	waitErr := cmd.Wait()
	cancel()
	wg.Wait()

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			e.console.CommandFailed(command)
			return nil, fmt.Errorf("waiting for command: %w", waitErr)
		}
	}

	result := &Result{
		ReturnCode: cmd.ProcessState.ExitCode(),
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
	}

	if result.ReturnCode == 0 {
		log.Info().Msgf("executor: command succeeded: %s", command)
		e.console.CommandDone(command)
	} else {
		log.Error().Msgf("executor: command failed with code %d: %s", result.ReturnCode, command)
		e.console.CommandFailed(command)
	}

	return result, nil
}

func (e *Executor) tickLoop(ctx context.Context) {
	interval := e.TickInterval
	if interval <= 0 {
		interval = defaultTickInterval
	}

	dots := []string{".", "..", "..."}
	i := 0

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.console.CommandTick(dots[i])
			i = (i + 1) % len(dots)
		}
	}
}

// pickShell returns the first shell found on the path, preferring bash.
func pickShell() string {
	for _, shell := range []string{"bash", "sh"} {
		if path, err := exec.LookPath(shell); err == nil {
			return path
		}
	}
	return ""
}
