package status

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadDirectory(t *testing.T) {
	input := strings.Join([]string{
		"Codice;Nome",
		"F42;ACME Logistics",
		"007;Squadra Sette",
		";senza codice",
	}, "\n")

	dir, err := LoadDirectory(strings.NewReader(input), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "ACME Logistics", dir["42"])
	assert.Equal(t, "Squadra Sette", dir["007"])
	assert.Len(t, dir, 2)
}

func TestLoadDirectory_CollisionLastWinsWithWarning(t *testing.T) {
	input := strings.Join([]string{
		"Codice;Nome",
		"42;Primo",
		"F42X;Secondo",
	}, "\n")

	core, logs := observer.New(zap.WarnLevel)
	dir, err := LoadDirectory(strings.NewReader(input), zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, "Secondo", dir["42"])
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "collision")
}

func TestLoadDirectory_MissingColumnsFails(t *testing.T) {
	_, err := LoadDirectory(strings.NewReader("foo;bar\n1;2\n"), zap.NewNop())
	assert.Error(t, err)
}

func TestLoadDirectory_SkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"Codice;Nome",
		"1;Uno",
		"solo-un-campo",
		"2;Due",
	}, "\n")

	dir, err := LoadDirectory(strings.NewReader(input), zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, dir, 2)
}
