package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubConfigDirs(t *testing.T, dirs ...string) {
	t.Helper()
	orig := configDirs
	configDirs = func() []string { return dirs }
	t.Cleanup(func() { configDirs = orig })
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	stubConfigDirs(t, "/home/ann/.config", "/etc/xdg")

	cfg, path, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, "", path)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_XDGFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/xdg/allocation/config.yaml", []byte("base_cost: 450\n"), 0o644))
	stubConfigDirs(t, "/home/ann/.config", "/xdg")

	cfg, path, err := Load(fs, "")
	require.NoError(t, err)
	assert.Equal(t, "/xdg/allocation/config.yaml", path)
	assert.Equal(t, 450, cfg.BaseCost)
	assert.Equal(t, "allocations.cfg", cfg.Allocations)
}

func TestLoad_XDGLookupOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/ann/.config/allocation/config.yaml", []byte("base_cost: 1\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/etc/xdg/allocation/config.yaml", []byte("base_cost: 2\n"), 0o644))
	stubConfigDirs(t, "", "/home/ann/.config", "/etc/xdg")

	cfg, path, err := Load(fs, "")
	require.NoError(t, err)
	assert.Equal(t, "/home/ann/.config/allocation/config.yaml", path)
	assert.Equal(t, 1, cfg.BaseCost)
}

func TestLoad_EnumsAreCaseInsensitive(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "c.yaml", []byte("duplicate_policy: Reject\noutput: JSON\nlog_level: DEBUG\n"), 0o644))

	cfg, _, err := Load(fs, "c.yaml")
	require.NoError(t, err)
	assert.Equal(t, "reject", cfg.DuplicatePolicy)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ExplicitFileOverridesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := []byte(`allocations: /data/allocations.cfg
employees: /data/employees.dat
duplicate_policy: reject
output: json
breakdown: true
log_level: debug
`)
	require.NoError(t, afero.WriteFile(fs, "/etc/allocation.yaml", data, 0o644))

	cfg, path, err := Load(fs, "/etc/allocation.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/allocation.yaml", path)
	assert.Equal(t, Config{
		Allocations:     "/data/allocations.cfg",
		Employees:       "/data/employees.dat",
		BaseCost:        300,
		DuplicatePolicy: "reject",
		Output:          "json",
		Breakdown:       true,
		LogLevel:        "debug",
	}, cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "base_cost: [", "failed to parse"},
		{"negative base cost", "base_cost: -1", "BaseCost"},
		{"unknown policy", "duplicate_policy: merge", "DuplicatePolicy"},
		{"unknown output", "output: xml", "Output"},
		{"empty path", "employees: \"\"", "Employees"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "c.yaml", []byte(tt.content), 0o644))
			_, _, err := Load(fs, "c.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, _, err := Load(afero.NewMemMapFs(), "/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
