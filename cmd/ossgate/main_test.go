package main

import (
	"bytes"
	"context"
	"encoding/json"
	"ossgate/pkg/storage"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, configPath, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigSetGetListDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := run(t, path, "", "config", "set", "profiles.dev.provider", "MinIO")
	require.NoError(t, err)
	out, err := run(t, path, "", "config", "set", "profiles.dev.secret_key", "s3cr3t")
	require.NoError(t, err)
	assert.Contains(t, out, "= ****")
	assert.NotContains(t, out, "s3cr3t")

	out, err = run(t, path, "", "config", "get", "profiles.dev.provider")
	require.NoError(t, err)
	assert.Equal(t, "profiles.dev.provider = minio\n", out)

	out, err = run(t, path, "", "config", "list", "-o", "json")
	require.NoError(t, err)
	var settings map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &settings))
	dev := settings["profiles"].(map[string]any)["dev"].(map[string]any)
	assert.Equal(t, "****", dev["secret_key"])

	out, err = run(t, path, "n\n", "config", "delete", "profiles.dev")
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled.")

	_, err = run(t, path, "y\n", "config", "delete", "profiles.dev")
	require.NoError(t, err)
	_, err = run(t, path, "", "config", "get", "profiles.dev.provider")
	assert.Error(t, err)
}

func TestConfigCommandsSurviveInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := run(t, path, "", "config", "set", "timeouts.list", "5s")
	require.NoError(t, err)

	// A bad level written through the env makes the full load fail
	t.Setenv("OSSGATE_LOG_LEVEL", "loud")

	_, err = run(t, path, "", "providers")
	assert.Error(t, err)

	out, err := run(t, path, "", "config", "get", "timeouts.list")
	require.NoError(t, err)
	assert.Contains(t, out, "5s")
}

func TestProvidersCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := run(t, path, "", "providers", "-o", "json")
	require.NoError(t, err)
	var catalogue []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &catalogue))
	assert.NotEmpty(t, catalogue)

	out, err = run(t, path, "", "providers", "Qiniu")
	require.NoError(t, err)
	assert.Contains(t, out, "z0")

	_, err = run(t, path, "", "providers", "dropbox")
	assert.Error(t, err)
}

func TestBucketsWithoutProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := run(t, path, "", "buckets")
	require.NoError(t, err)
	assert.Contains(t, out, "No profiles configured")
}

func TestProfileSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	for _, kv := range [][2]string{
		{"profiles.dev.provider", "minio"},
		{"profiles.prod.provider", "aliyun"},
		{"profiles.prod.bucket", "logs"},
	} {
		_, err := run(t, path, "", "config", "set", kv[0], kv[1])
		require.NoError(t, err)
	}

	app, err := newApp(appOptions{configPath: path, stdin: strings.NewReader(""), stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}})
	require.NoError(t, err)

	_, err = app.profileConfig("", "")
	assert.ErrorContains(t, err, "--profile")

	cfg, err := app.profileConfig("prod", "")
	require.NoError(t, err)
	assert.Equal(t, "logs", cfg.Bucket)

	cfg, err = app.profileConfig("prod", "other")
	require.NoError(t, err)
	assert.Equal(t, "other", cfg.Bucket)

	names, err := app.resolveProfiles([]string{"PROD", "prod", " dev "})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod", "dev"}, names)

	_, err = app.resolveProfiles([]string{"staging"})
	assert.ErrorContains(t, err, "staging")
}

func TestRmWithoutConfirmationDoesNotDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := run(t, path, "", "config", "set", "profiles.dev.provider", "minio")
	require.NoError(t, err)
	_, err = run(t, path, "", "config", "set", "profiles.dev.bucket", "media")
	require.NoError(t, err)

	out, err := run(t, path, "wrong\n", "rm", "photos/cat.jpg")
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled.")
}

func TestResultError(t *testing.T) {
	assert.NoError(t, resultError(storage.Result[string]{Success: true}))
	assert.EqualError(t, resultError(storage.Result[string]{Error: "boom", Kind: "provider"}), "boom")
}
