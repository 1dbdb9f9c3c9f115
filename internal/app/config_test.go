package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pouriyajamshidi/tcprobe/internal/app"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := app.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, app.DefaultConfig(), cfg)
	assert.Equal(t, "5s", cfg.Timeout)
	assert.Equal(t, 50, cfg.Concurrency)
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "tcprobe.yaml", `
timeout: 250ms
retries: 2
concurrency: 8
targets:
  - example.com:443
  - 10.0.0.1:22
file: hosts.txt
`)

	cfg, err := app.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, app.Config{
		Timeout:     "250ms",
		Retries:     2,
		Concurrency: 8,
		Targets:     []string{"example.com:443", "10.0.0.1:22"},
		File:        "hosts.txt",
	}, cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "tcprobe.yaml", "retries: 1\n")

	cfg, err := app.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "5s", cfg.Timeout)
	assert.Equal(t, uint(1), cfg.Retries)
	assert.Equal(t, 50, cfg.Concurrency)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
		},
		{
			name: "invalid yaml",
			path: func(t *testing.T) string { return writeFile(t, "bad.yaml", "targets: [unterminated\n") },
		},
		{
			name:    "zero concurrency",
			path:    func(t *testing.T) string { return writeFile(t, "zero.yaml", "concurrency: 0\n") },
			wantErr: app.ErrInvalidConcurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.LoadConfig(tt.path(t))
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
