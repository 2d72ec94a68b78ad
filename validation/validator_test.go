package validation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AliceBotProject/alicebot-store/models"

	"github.com/Noah-Huppert/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIndex implements PackageIndex with a canned response
type fakeIndex struct {
	err   error
	calls int
}

func (i *fakeIndex) Exists(ctx context.Context, packageName string) error {
	i.calls++
	return i.err
}

// fakeSandbox implements SandboxTester with a canned response
type fakeSandbox struct {
	output string
	err    error
	calls  int
}

func (s *fakeSandbox) Test(ctx context.Context, kind models.Kind, packageName, moduleName string) (string, error) {
	s.calls++
	return s.output, s.err
}

func newTestValidator(index PackageIndex, sandbox SandboxTester) Validator {
	return Validator{
		Logger:  golog.NewStdLogger("validation-test"),
		Index:   index,
		Sandbox: sandbox,
	}
}

func pluginSubmission(moduleName string) models.PluginSubmission {
	return models.PluginSubmission{
		Header:     models.Header{Name: "cool-plugin"},
		PyPIName:   "cool-plugin",
		ModuleName: moduleName,
	}
}

// TestValidatePluginSuccess ensures a plugin which exists and loads passes
// and its sandbox output is returned
func TestValidatePluginSuccess(t *testing.T) {
	index := &fakeIndex{}
	sandbox := &fakeSandbox{output: "loaded cool_plugin"}

	output, err := newTestValidator(index, sandbox).Validate(
		context.Background(), pluginSubmission("cool_plugin"))
	require.Nil(t, err, "Validate should have responded with no error")

	assert.Equal(t, "loaded cool_plugin", output)
	assert.Equal(t, 1, index.calls)
	assert.Equal(t, 1, sandbox.calls)
}

// TestValidatePackageNotFound ensures a missing index package fails with a
// ValidationError before the sandbox runs
func TestValidatePackageNotFound(t *testing.T) {
	index := &fakeIndex{err: fmt.Errorf("package index responded with status: 404 Not Found")}
	sandbox := &fakeSandbox{}

	_, err := newTestValidator(index, sandbox).Validate(
		context.Background(), pluginSubmission("cool_plugin"))

	require.NotNil(t, err)

	valErr, ok := err.(ValidationError)
	require.True(t, ok, "error should be a ValidationError")
	assert.Contains(t, valErr.Reason, "package not found")
	assert.Equal(t, 0, sandbox.calls, "sandbox should not run for a missing package")
}

// TestValidateSandboxFailure ensures a failed load test surfaces the captured
// output in the error
func TestValidateSandboxFailure(t *testing.T) {
	index := &fakeIndex{}
	sandbox := &fakeSandbox{
		output: "ImportError: no module named cool_plugin",
		err:    fmt.Errorf("load test process failed: exit status 1"),
	}

	_, err := newTestValidator(index, sandbox).Validate(
		context.Background(), pluginSubmission("cool_plugin"))

	require.NotNil(t, err)

	valErr, ok := err.(ValidationError)
	require.True(t, ok, "error should be a ValidationError")
	assert.Contains(t, valErr.Output, "ImportError")
}

// TestValidateBadModuleName ensures unimportable module names are rejected
// without touching the index or the sandbox
func TestValidateBadModuleName(t *testing.T) {
	for _, moduleName := range []string{"null", "cool-plugin"} {
		index := &fakeIndex{}
		sandbox := &fakeSandbox{}

		_, err := newTestValidator(index, sandbox).Validate(
			context.Background(), pluginSubmission(moduleName))

		require.NotNilf(t, err, "module name %q should be rejected", moduleName)
		assert.Equal(t, 0, index.calls)
		assert.Equal(t, 0, sandbox.calls)
	}
}

// TestValidateAdapter ensures adapters validate with the adapter kind
func TestValidateAdapter(t *testing.T) {
	index := &fakeIndex{}
	sandbox := &fakeSandbox{output: "loaded"}

	_, err := newTestValidator(index, sandbox).Validate(context.Background(),
		models.AdapterSubmission{
			Header:     models.Header{Name: "cool-adapter"},
			PyPIName:   "cool-adapter",
			ModuleName: "cool_adapter",
		})

	require.Nil(t, err)
	assert.Equal(t, 1, sandbox.calls)
}

// TestValidateBot ensures bot submissions always pass with no external calls
func TestValidateBot(t *testing.T) {
	index := &fakeIndex{}
	sandbox := &fakeSandbox{}

	output, err := newTestValidator(index, sandbox).Validate(context.Background(),
		models.BotSubmission{
			Header:      models.Header{Name: "my-bot"},
			Description: "A bot",
			Author:      "alice",
			Homepage:    "https://example.com",
			Tags:        "chat",
		})

	require.Nil(t, err)
	assert.Equal(t, "", output)
	assert.Equal(t, 0, index.calls)
	assert.Equal(t, 0, sandbox.calls)
}

// TestPyPIIndexExists ensures the index check accepts a 200 and rejects
// other statuses
func TestPyPIIndexExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/pypi/cool-plugin/json" {
				w.Write([]byte(`{"info": {}}`))
				return
			}

			w.WriteHeader(http.StatusNotFound)
		}))
	defer server.Close()

	index := PyPIIndex{BaseURL: server.URL}

	assert.Nil(t, index.Exists(context.Background(), "cool-plugin"))
	assert.NotNil(t, index.Exists(context.Background(), "missing-plugin"))
}
