// cmd/tools/registry-validator/main_test.go
package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubhankar10/Map-Assistant/pkg/registry"
)

// ==========================
// validateRegistry
// ==========================

func TestValidateRegistry_BuiltInCatalog(t *testing.T) {
	// Every registered plan builder must pass against the shipped catalog,
	// including args built from map and slice analysis fields.
	err := validateRegistry("")

	assert.NoError(t, err)
}

func TestValidateRegistry_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data, err := json.Marshal(registry.Default())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	assert.NoError(t, validateRegistry(path))
}

func TestValidateRegistry_UnknownExecutor(t *testing.T) {
	reg := registry.Default()
	reg.Operations[0].Executor = "carrier_pigeon"

	path := filepath.Join(t.TempDir(), "catalog.json")
	data, err := json.Marshal(reg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	err = validateRegistry(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown executor")
}

func TestValidateRegistry_MissingFile(t *testing.T) {
	err := validateRegistry(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
}

// ==========================
// sampleAnalysis
// ==========================

func TestSampleAnalysis_FieldsInitialized(t *testing.T) {
	a := sampleAnalysis()

	require.NotNil(t, a)
	assert.NotNil(t, a.Constraints)
	assert.NotNil(t, a.TimesOfDay)
	assert.NotNil(t, a.DateSpans)
	assert.NotEmpty(t, a.Cities)
	assert.NotEmpty(t, a.POIs)
	require.NotNil(t, a.Days)
	assert.Equal(t, 3, *a.Days)
}
