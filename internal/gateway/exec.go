package gateway

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result is the raw outcome of one tool process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner starts the tool and waits for it. A non-nil error means the process
// could not be started; a non-zero exit is reported through Result.ExitCode.
type Runner func(ctx context.Context, name string, args []string) (Result, error)

func execRunner(ctx context.Context, name string, args []string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			if res.ExitCode == 0 {
				res.ExitCode = -1
			}
			return res, nil
		}
		return res, err
	}
	return res, nil
}
