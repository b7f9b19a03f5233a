package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
model:
  name: claude-sonnet-4-20250514
  max_tokens: 4000
  temperature: 0.2
scan:
  ignore_patterns:
    - "**/*.log"
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model.Name)
	assert.Equal(t, 4000, cfg.Model.MaxTokens)
	assert.Equal(t, 0.2, cfg.Model.Temperature)
	assert.Equal(t, "anthropic", cfg.Model.Provider)
	assert.Equal(t, "ANTHROPIC_API_KEY", cfg.Model.APIKeyEnv)
	require.NotNil(t, cfg.Scan)
	assert.Equal(t, []string{"**/*.log"}, cfg.Scan.IgnorePatterns)
	assert.Equal(t, path, cfg.Location())
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "model": {"name": "claude-3-7-sonnet-latest", "max_tokens": 1000}
}`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "claude-3-7-sonnet-latest", cfg.Model.Name)
	assert.Equal(t, 1000, cfg.Model.MaxTokens)
	assert.Equal(t, 0.5, cfg.Model.Temperature)
}

func TestLoad_JSON_UnknownFieldRejected(t *testing.T) {
	path := writeConfig(t, "config.json", `{"model": {"name": "m"}, "bogus": true}`)

	_, err := Load(context.Background(), path)
	require.Error(t, err)
}

func TestLoad_HCL(t *testing.T) {
	path := writeConfig(t, "config.hcl", `
model {
  name        = "claude-sonnet-4-20250514"
  max_tokens  = 3000
  temperature = 0.7
}

scan {
  ignore_dirs = ["vendor"]
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model.Name)
	assert.Equal(t, 3000, cfg.Model.MaxTokens)
	assert.Equal(t, 0.7, cfg.Model.Temperature)
	require.NotNil(t, cfg.Scan)
	assert.Equal(t, []string{"vendor"}, cfg.Scan.IgnoreDirs)
}

func TestLoad_DotPatchpal_TriesYAMLThenHCL(t *testing.T) {
	yamlPath := writeConfig(t, ".patchpal", "model:\n  name: from-yaml\n")
	cfg, err := Load(context.Background(), yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", cfg.Model.Name)

	hclPath := writeConfig(t, ".patchpal", "model {\n  name = \"from-hcl\"\n}\n")
	cfg, err = Load(context.Background(), hclPath)
	require.NoError(t, err)
	assert.Equal(t, "from-hcl", cfg.Model.Name)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", "whatever")

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config extension")
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing_model_name",
			yaml:    "model:\n  max_tokens: 100\n",
			wantErr: "model.name is required",
		},
		{
			name:    "unsupported_provider",
			yaml:    "model:\n  name: m\n  provider: openai\n",
			wantErr: "unsupported provider",
		},
		{
			name:    "negative_max_tokens",
			yaml:    "model:\n  name: m\n  max_tokens: -1\n",
			wantErr: "max_tokens",
		},
		{
			name:    "temperature_out_of_range",
			yaml:    "model:\n  name: m\n  temperature: 1.5\n",
			wantErr: "temperature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "config.yaml", tt.yaml)
			_, err := Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(context.Background(), filepath.Join(t.TempDir(), ".patchpal"))
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model.Name)
	assert.Equal(t, "anthropic", cfg.Model.Provider)
	assert.Equal(t, 2000, cfg.Model.MaxTokens)
	assert.Equal(t, "", cfg.Location())
}

func TestModelConfig_APIKey(t *testing.T) {
	m := ModelConfig{APIKeyEnv: "PATCHPAL_TEST_KEY"}

	t.Setenv("PATCHPAL_TEST_KEY", "sk-test")
	key, err := m.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", key)

	t.Setenv("PATCHPAL_TEST_KEY", "")
	_, err = m.APIKey()
	require.Error(t, err)
}
