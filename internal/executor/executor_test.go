package executor

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestExecutor() *Executor {
	return New(zap.NewNop().Sugar())
}

func TestRunCapturesOutput(t *testing.T) {
	e := newTestExecutor()

	res, err := e.Run(context.Background(), Request{
		Path:    "/bin/sh",
		Args:    `-c "echo out; echo err 1>&2"`,
		Timeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if res.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", res.ExitCode)
	}
	if res.TimedOut {
		t.Error("expected TimedOut=false")
	}
	if !strings.Contains(res.Stdout, "out") {
		t.Errorf("stdout %q missing expected output", res.Stdout)
	}
	if !strings.Contains(res.Stderr, "err") {
		t.Errorf("stderr %q missing expected output", res.Stderr)
	}
	if res.Duration <= 0 {
		t.Error("expected positive duration")
	}
}

func TestRunNonZeroExit(t *testing.T) {
	e := newTestExecutor()

	res, err := e.Run(context.Background(), Request{
		Path:    "/bin/sh",
		Args:    `-c "echo broken 1>&2; exit 7"`,
		Timeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if res.ExitCode != 7 {
		t.Errorf("expected exit code 7, got %d", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "broken") {
		t.Errorf("stderr %q missing diagnostic text", res.Stderr)
	}
}

func TestRunTimeoutKillsProcessTree(t *testing.T) {
	e := newTestExecutor()

	start := time.Now()
	// The child spawns its own subprocess; the group kill must take out both.
	res, err := e.Run(context.Background(), Request{
		Path:    "/bin/sh",
		Args:    `-c "sleep 30 & sleep 30"`,
		Timeout: 200 * time.Millisecond,
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !res.TimedOut {
		t.Fatal("expected TimedOut=true")
	}
	if res.ExitCode != TimedOutExitCode {
		t.Errorf("expected sentinel exit code %d, got %d", TimedOutExitCode, res.ExitCode)
	}
	// Kill plus grace must return well before the 30s sleeps would.
	if elapsed > DefaultKillGrace+2*time.Second {
		t.Errorf("Run took %v, kill did not take effect", elapsed)
	}
}

func TestRunCallerCancellation(t *testing.T) {
	e := newTestExecutor()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	res, err := e.Run(ctx, Request{
		Path:    "/bin/sh",
		Args:    `-c "sleep 30"`,
		Timeout: 60 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !res.TimedOut {
		t.Error("expected TimedOut=true on caller cancellation")
	}
	if res.ExitCode != TimedOutExitCode {
		t.Errorf("expected sentinel exit code, got %d", res.ExitCode)
	}
}

func TestRunMissingExecutable(t *testing.T) {
	e := newTestExecutor()

	_, err := e.Run(context.Background(), Request{
		Path:    "/nonexistent/binary",
		Timeout: 5 * time.Second,
	})
	if err == nil {
		t.Fatal("expected error for missing executable, got nil")
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"plain flags", "-dNOPAUSE -dBATCH", []string{"-dNOPAUSE", "-dBATCH"}},
		{"quoted path", `-sOutputFile="/tmp/o u t.pdf" "/tmp/in.pdf"`,
			[]string{"-sOutputFile=/tmp/o u t.pdf", "/tmp/in.pdf"}},
		{"extra whitespace", "  -a   -b ", []string{"-a", "-b"}},
		{"empty quoted token", `-a "" -b`, []string{"-a", "", "-b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitArgs(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
