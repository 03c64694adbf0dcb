package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaults_AreValid(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Validate())

	assert.Equal(t, 2, s.Collection.MinSize)
	assert.Equal(t, 6, s.Collection.MaxSize)
	assert.Equal(t, 8, s.MaxDepth)
	assert.Equal(t, ModeStrict, s.Mode)
	assert.True(t, s.FailOnMaxAttempts)
}

func TestParse_OverlaysDefaults(t *testing.T) {
	s, err := Parse([]byte(`
seed: 12345
maxDepth: 3
mode: lenient
collection:
  minSize: 1
  maxSize: 1
string:
  minLength: 5
  maxLength: 5
duration:
  min: 1m
  max: 2m
time:
  min: 2001-02-03T00:00:00Z
  max: 2001-02-04T00:00:00Z
`))
	require.NoError(t, err)

	assert.Equal(t, uint64(12345), s.Seed)
	assert.Equal(t, 3, s.MaxDepth)
	assert.Equal(t, ModeLenient, s.Mode)
	assert.Equal(t, 1, s.Collection.MaxSize)
	assert.Equal(t, 6, s.Map.MaxSize, "untouched keys keep defaults")
	assert.Equal(t, time.Minute, s.Duration.Min)
	assert.Equal(t, 2001, s.Time.Min.Year())
}

func TestValidate_AdjustsInvertedRanges(t *testing.T) {
	s := Defaults()
	s.Collection.MinSize = 10
	s.Integer.Min, s.Integer.Max = 50, 5

	require.NoError(t, s.Validate())
	assert.Equal(t, 10, s.Collection.MaxSize)
	assert.Equal(t, int64(50), s.Integer.Max)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	s := Defaults()
	s.MaxDepth = -1
	s.MaxGenerationAttempts = 0
	s.Mode = "loud"
	s.Map.MinSize = -2

	err := s.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxGenerationAttempts: 7\n"), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, s.MaxGenerationAttempts)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("maxDepth: [1"))
	assert.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	data, err := Marshal(Defaults())
	require.NoError(t, err)

	s, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}
