package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	contents := `
# comment line
GRAVITY_SCENARIO=cluster
GRAVITY_TIME_WARP = 16
QUOTED="hello world"
SINGLE='single quoted'

=no-key
broken-line
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	for _, k := range []string{"GRAVITY_SCENARIO", "GRAVITY_TIME_WARP", "QUOTED", "SINGLE"} {
		t.Setenv(k, "")
	}

	require.NoError(t, Load(path))
	assert.Equal(t, "cluster", os.Getenv("GRAVITY_SCENARIO"))
	assert.Equal(t, "16", os.Getenv("GRAVITY_TIME_WARP"))
	assert.Equal(t, "hello world", os.Getenv("QUOTED"))
	assert.Equal(t, "single quoted", os.Getenv("SINGLE"))
}

func TestLoadMissingFileIsFine(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "absent.env")))
}
