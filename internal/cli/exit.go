// internal/cli/exit.go
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"foldlab-core/folding"
	"foldlab/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitNoResult  = 1 // unsatisfied puzzle or nothing folded (configurable)
	ExitUsage     = 2
	ExitIO        = 3
	ExitCancelled = 130
)

// exitError carries an explicit exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: ExitUsage, err: err}
}

// silentExit sets the code without printing anything.
func silentExit(code int) error { return &exitError{code: code} }

// exitCode maps a command error to a process exit code and reports it.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCancelled
	}
	if writers.IsBrokenPipe(err) {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "error:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "error:", err)
	// cobra reports unknown commands and flags as plain errors
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") || errors.Is(err, folding.ErrUnknownEngine) {
		return ExitUsage
	}
	return ExitIO
}
