// Package execcapture implements the Command Capture collaborator named
// in SPEC_FULL.md §6: run a shell command and return its combined
// stdout+stderr, grounded on original_source/aifr/terminal_capture.py.
package execcapture

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"aifr/internal/provider"
)

// DefaultTimeout matches spec.md §5's command-capture suspension point.
const DefaultTimeout = 30 * time.Second

// Result is a captured command's combined output and exit status.
type Result struct {
	CombinedOutput string
	ExitCode       int
}

// Run executes command through the shell, always returning even on a
// non-zero exit; only a timeout or spawn failure produces an error.
func Run(ctx context.Context, command string, timeout time.Duration) (Result, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return Result{}, &provider.IOError{Op: fmt.Sprintf("command %q timed out after %s", command, timeout), Err: ctx.Err()}
	}

	exitCode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		return Result{}, &provider.IOError{Op: "spawn command " + command, Err: err}
	}

	return Result{CombinedOutput: combine(stdout.String(), stderr.String(), exitCode), ExitCode: exitCode}, nil
}

func combine(stdout, stderr string, exitCode int) string {
	var parts []string
	if stdout != "" {
		parts = append(parts, "STDOUT:\n"+stdout)
	}
	if stderr != "" {
		parts = append(parts, "STDERR:\n"+stderr)
	}
	output := "(command produced no output)"
	if len(parts) > 0 {
		output = strings.Join(parts, "\n\n")
	}
	if exitCode != 0 {
		output = fmt.Sprintf("Exit code: %d\n\n%s", exitCode, output)
	}
	return output
}
