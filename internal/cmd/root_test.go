package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/fileset-compare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a fresh root command with args and an isolated
// config path, returning stdout, stderr and the error.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	if !containsArg(args, "--config") && (len(args) == 0 || args[0] != "history") {
		args = append(args, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func containsArg(args []string, name string) bool {
	for _, a := range args {
		if a == name || strings.HasPrefix(a, name+"=") {
			return true
		}
	}
	return false
}

// writeTree creates the named files (relative paths) under a new temp dir.
func writeTree(t *testing.T, root string, files ...string) string {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	return root
}

// deployTrees builds the kubernetes/nomad example.
func deployTrees(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	k8s := writeTree(t, filepath.Join(base, "kubernetes"), "auth_service.yaml", "api-gateway.yml")
	nomad := writeTree(t, filepath.Join(base, "nomad"), "api-gateway.nomad")
	return k8s, nomad
}

func requireConfigError(t *testing.T, err error, field string) *models.ConfigError {
	t.Helper()
	var cfgErr *models.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, field, cfgErr.Field)
	return cfgErr
}

func TestRootCommandHelp(t *testing.T) {
	stdout, _, err := executeCommand(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "fileset-compare")
	for _, flag := range []string{"--dir", "--match", "--replace", "--exclude", "--recursive", "--on-missing", "--format", "--history-db"} {
		assert.Contains(t, stdout, flag)
	}
}

func TestRootCommandHasHistorySubcommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "fileset-compare", cmd.Use)

	sub, _, err := cmd.Find([]string{"history", "list"})
	require.NoError(t, err)
	assert.Equal(t, "list", sub.Name())
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "fileset-compare "+Version+"\n", stdout)
}

func TestRejectsPositionalArgs(t *testing.T) {
	_, _, err := executeCommand(t, "somewhere")
	assert.Error(t, err)
}
