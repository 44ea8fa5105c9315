package extract

import (
	"bytes"
	"context"
	"log"
	"os/exec"
	"strings"
	"time"
)

// Runner lets us stub the poppler binaries in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

// NewRunner returns a Runner that shells out to the named binary.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		log.Printf("extract: %s %s failed after %s: %v (stderr: %s)",
			name, strings.Join(args, " "), time.Since(start), err, truncate(errb.String(), 2048))
	}

	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
