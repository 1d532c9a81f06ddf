// pkg/registry/registry_test.go
package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_WellFormed(t *testing.T) {
	reg := Default()

	require.NotEmpty(t, reg.Operations)

	seen := map[string]bool{}
	for _, op := range reg.Operations {
		assert.NotEmpty(t, op.Op)
		assert.NotEmpty(t, op.Description, op.Op)
		assert.Contains(t, []string{"llm", "pois_db", "engine", "routing_api"}, op.Executor, op.Op)
		assert.False(t, seen[op.Op], "duplicate op %s", op.Op)
		seen[op.Op] = true
	}
}

func TestByOp(t *testing.T) {
	reg := Default()
	index := reg.ByOp()

	assert.Len(t, index, len(reg.Operations))

	op, ok := index["FAIRNESS_RANK"]
	require.True(t, ok)
	assert.Equal(t, "engine", op.Executor)
}

func TestLoadRegistry_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	data, err := json.Marshal(Default())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Operations, len(Default().Operations))
	assert.Equal(t, Default().Version, loaded.Version)
}

func TestLoadRegistry_Missing(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
