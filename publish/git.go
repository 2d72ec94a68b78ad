package publish

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Noah-Huppert/golog"
)

// gitTimeout bounds each git command
const gitTimeout = 60 * time.Second

// GitRunner runs git commands in the store checkout. Injected into the
// Publisher so tests can substitute a fake.
type GitRunner interface {
	// Run runs one git command and returns its combined output
	Run(ctx context.Context, args ...string) (string, error)
}

// ExecGitRunner implements GitRunner with the git binary
type ExecGitRunner struct {
	// Logger logs the commands which are run
	Logger golog.Logger

	// Dir is the working directory in which to run git, defaults to the
	// process working directory
	Dir string
}

// Run implements GitRunner
func (g ExecGitRunner) Run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir

	g.Logger.Debugf("run command: git %s", strings.Join(args, " "))

	outputBytes, err := cmd.CombinedOutput()
	output := string(outputBytes)

	if ctx.Err() == context.DeadlineExceeded {
		return output, fmt.Errorf("git %s timed out after %s", args[0], gitTimeout)
	}

	if err != nil {
		return output, fmt.Errorf("git %s failed: %s", args[0], err.Error())
	}

	return output, nil
}
