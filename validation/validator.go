package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/AliceBotProject/alicebot-store/models"

	"github.com/Noah-Huppert/golog"
)

// Validator confirms a submission references a real package which loads
// successfully. Bot submissions are metadata only and always pass.
type Validator struct {
	// Logger logs validation progress
	Logger golog.Logger

	// Index checks package existence
	Index PackageIndex

	// Sandbox runs the load test
	Sandbox SandboxTester
}

// Validate checks a submission. For plugins and adapters the package must
// exist in the index and load inside the sandbox. Returns the captured
// sandbox output, empty for bots.
func (v Validator) Validate(ctx context.Context, submission models.Submission) (string, error) {
	switch sub := submission.(type) {
	case models.PluginSubmission:
		return v.validatePackage(ctx, models.KindPlugin, sub.PyPIName, sub.ModuleName)
	case models.AdapterSubmission:
		return v.validatePackage(ctx, models.KindAdapter, sub.PyPIName, sub.ModuleName)
	case models.BotSubmission:
		return "", nil
	}

	return "", fmt.Errorf("cannot validate submission kind: %s",
		submission.SubmissionKind())
}

// validatePackage runs the existence check and the sandbox load test for a
// code bearing submission
func (v Validator) validatePackage(ctx context.Context, kind models.Kind, packageName, moduleName string) (string, error) {
	// An importable module name can never contain "-". "null" is what
	// issue forms submit for an empty optional input.
	if moduleName == "null" || strings.Contains(moduleName, "-") {
		return "", ValidationError{
			Reason: fmt.Sprintf("module name %q is not importable", moduleName),
		}
	}

	v.Logger.Debugf("checking package index for %s", packageName)

	if err := v.Index.Exists(ctx, packageName); err != nil {
		return "", ValidationError{
			Reason: fmt.Sprintf("package not found: %s", err.Error()),
		}
	}

	v.Logger.Debugf("running sandbox load test for %s %s", kind, moduleName)

	output, err := v.Sandbox.Test(ctx, kind, packageName, moduleName)
	if err != nil {
		return "", ValidationError{
			Reason: err.Error(),
			Output: output,
		}
	}

	return output, nil
}
