package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCatalogFile ensures each kind maps to exactly one catalog file
func TestCatalogFile(t *testing.T) {
	assert.Equal(t, "plugins.json", KindPlugin.CatalogFile())
	assert.Equal(t, "adapters.json", KindAdapter.CatalogFile())
	assert.Equal(t, "bots.json", KindBot.CatalogFile())
}

// TestRequiredFields ensures every kind names its body fields
func TestRequiredFields(t *testing.T) {
	assert.Equal(t, []string{"pypi_name", "module_name"}, KindPlugin.RequiredFields())
	assert.Equal(t, []string{"pypi_name", "module_name"}, KindAdapter.RequiredFields())
	assert.Equal(t, []string{"description", "author", "homepage", "tags"},
		KindBot.RequiredFields())
}

// TestSubmissionJSONKeys ensures the serialized form uses the catalog's
// key names
func TestSubmissionJSONKeys(t *testing.T) {
	sub := PluginSubmission{
		Header: Header{
			Name: "cool-plugin",
			Time: 1700000000,
		},
		PyPIName:   "cool-plugin",
		ModuleName: "cool_plugin",
	}

	subBytes, err := json.Marshal(sub)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(subBytes, &fields))

	for _, key := range []string{"name", "time", "is_official", "pypi_name", "module_name"} {
		assert.Containsf(t, fields, key, "serialized submission should have key %s", key)
	}
}
