package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindEnvFilesMatchesDotEnvPrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("A=1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("A=1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "not_env.txt"), []byte("A=1"), 0o600))

	matches, err := findEnvFiles(dir)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestFindEnvFilesWalksSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "config")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, ".env.production"), []byte("A=1"), 0o600))

	matches, err := findEnvFiles(dir)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
