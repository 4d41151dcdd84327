// Package executor runs one external process per call with bounded
// lifetime: combined deadline and caller cancellation, process-group kill,
// and incremental stdout/stderr capture.
package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/openpdfa/openpdfa/internal/metrics"
)

// TimedOutExitCode is the sentinel exit code reported when a run is
// killed on deadline or cancellation. It is never a real process exit
// code and callers must not interpret it as one.
const TimedOutExitCode = -1

// DefaultKillGrace bounds how long Run waits for a killed process tree
// to actually exit before returning anyway.
const DefaultKillGrace = 3 * time.Second

// Request describes one external process invocation.
type Request struct {
	// Path is the absolute path of the executable.
	Path string
	// Args is an opaque, shell-free argument string. It is tokenized
	// with SplitArgs; no shell is ever involved.
	Args string
	// Timeout is the per-run deadline. Non-positive falls back to 60s.
	Timeout time.Duration
}

// Result is the outcome of one completed Run call.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Duration time.Duration
}

// Executor spawns and supervises external processes.
type Executor struct {
	killGrace time.Duration
	logger    *zap.SugaredLogger
}

// New creates an Executor with the default kill grace period.
func New(logger *zap.SugaredLogger) *Executor {
	return &Executor{killGrace: DefaultKillGrace, logger: logger}
}

// Run spawns the requested process and blocks until it has exited or been
// killed. On every return path the process tree is confirmed exited or a
// kill has been issued and the grace period has elapsed; the process is
// never left running past the call.
//
// A deadline or caller-cancellation fires the kill sequence and yields
// TimedOut=true with the sentinel exit code. Spawn and monitoring errors
// are returned as a non-nil error, never mapped to an exit code.
func (e *Executor) Run(ctx context.Context, req Request) (Result, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	cmd := exec.Command(req.Path, SplitArgs(req.Args)...)
	// Own process group so the whole tree can be killed: gs may spawn helpers.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("start %s: %w", req.Path, err)
	}

	// Drain both pipes concurrently with execution so the process never
	// blocks on a full pipe while we wait for it to exit.
	var stdout, stderr lineBuffer
	var readers sync.WaitGroup
	readers.Add(2)
	go captureLines(&readers, stdoutPipe, &stdout)
	go captureLines(&readers, stderrPipe, &stderr)

	// Readers are joined before Wait: Wait closes the pipes.
	done := make(chan error, 1)
	go func() {
		readers.Wait()
		done <- cmd.Wait()
	}()

	select {
	case waitErr := <-done:
		res := Result{
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Duration: time.Since(start),
		}
		if waitErr != nil {
			var exitErr *exec.ExitError
			if !errors.As(waitErr, &exitErr) {
				e.killTree(cmd)
				return Result{}, fmt.Errorf("wait for %s: %w", req.Path, waitErr)
			}
			res.ExitCode = exitErr.ExitCode()
		}
		return res, nil

	case <-ctx.Done():
		e.killTree(cmd)
		select {
		case <-done:
		case <-time.After(e.killGrace):
			e.logger.Warnw("process tree did not exit within grace period after kill",
				"path", req.Path, "pid", cmd.Process.Pid)
		}
		return Result{
			ExitCode: TimedOutExitCode,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			TimedOut: true,
			Duration: time.Since(start),
		}, nil
	}
}

// killTree force-kills the process group; falls back to killing the
// top-level process if the group is already gone.
func (e *Executor) killTree(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	if pgid, err := syscall.Getpgid(cmd.Process.Pid); err == nil {
		_ = syscall.Kill(-pgid, syscall.SIGKILL)
	} else {
		_ = cmd.Process.Kill()
	}
	metrics.ProcessKillsTotal.Inc()
}

// lineBuffer is an append-only buffer safe for one writer goroutine and
// a reader that may observe it mid-run (the timeout path).
type lineBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *lineBuffer) appendLine(line string) {
	b.mu.Lock()
	b.buf = append(b.buf, line...)
	b.buf = append(b.buf, '\n')
	b.mu.Unlock()
}

func (b *lineBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

func captureLines(wg *sync.WaitGroup, r io.Reader, buf *lineBuffer) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		buf.appendLine(scanner.Text())
	}
}
