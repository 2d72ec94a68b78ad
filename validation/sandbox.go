package validation

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/AliceBotProject/alicebot-store/models"

	"github.com/Noah-Huppert/golog"
)

// sandboxTimeout bounds the sandbox load test process
const sandboxTimeout = 60 * time.Second

// defaultSandboxScript is the load test entrypoint in the store checkout
const defaultSandboxScript = "test.py"

// SandboxTester attempts to load a submitted package inside a bounded
// external process. Injected into the Validator so tests can substitute
// a fake.
type SandboxTester interface {
	// Test loads the module of a package and returns the process's
	// combined output. A non nil error means the package failed
	// to load.
	Test(ctx context.Context, kind models.Kind, packageName, moduleName string) (string, error)
}

// ExecSandboxTester implements SandboxTester by running the load test
// script in a subprocess. The package under test is installed into an
// ephemeral environment alongside the bot framework, so a broken package
// never touches the runner's own environment.
type ExecSandboxTester struct {
	// Logger logs the commands which are run
	Logger golog.Logger

	// Script is the path of the load test entrypoint, defaults
	// to test.py
	Script string
}

// Test implements SandboxTester
func (t ExecSandboxTester) Test(ctx context.Context, kind models.Kind, packageName, moduleName string) (string, error) {
	script := t.Script
	if script == "" {
		script = defaultSandboxScript
	}

	ctx, cancel := context.WithTimeout(ctx, sandboxTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "uv", "run",
		"--with", "alicebot",
		"--with", packageName,
		script, string(kind), moduleName)

	t.Logger.Debugf("run command: %s", strings.Join(cmd.Args, " "))

	outputBytes, err := cmd.CombinedOutput()
	output := string(outputBytes)

	if ctx.Err() == context.DeadlineExceeded {
		return output, fmt.Errorf("load test timed out after %s", sandboxTimeout)
	}

	if err != nil {
		return output, fmt.Errorf("load test process failed: %s", err.Error())
	}

	return output, nil
}
