// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"

	"gitlab.com/tozd/go/errors"
)

// 🤖 ModelConfig describes the language model the assistant talks to
type ModelConfig struct {
	Provider    string  `json:"provider,omitempty" yaml:"provider,omitempty"`
	Name        string  `json:"name" yaml:"name"`
	APIKeyEnv   string  `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// 🌲 ScanConfig controls what the directory scanner skips
type ScanConfig struct {
	IgnoreDirs     []string `json:"ignore_dirs,omitempty" yaml:"ignore_dirs,omitempty"`
	IgnoreFiles    []string `json:"ignore_files,omitempty" yaml:"ignore_files,omitempty"`
	IgnorePatterns []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
}

// 📚 Config is the complete assistant configuration
type Config struct {
	Model ModelConfig `json:"model" yaml:"model"`
	Scan  *ScanConfig `json:"scan,omitempty" yaml:"scan,omitempty"`

	// location is the file this config was loaded from, if any
	location string
}

const (
	defaultProvider    = "anthropic"
	defaultModelName   = "claude-sonnet-4-20250514"
	defaultAPIKeyEnv   = "ANTHROPIC_API_KEY"
	defaultBaseURL     = "https://api.anthropic.com"
	defaultMaxTokens   = 2000
	defaultTemperature = 0.5
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{Model: ModelConfig{Name: defaultModelName}}
	cfg.applyDefaults()
	return cfg
}

// Location returns the path the config was loaded from, or "" for defaults.
func (c *Config) Location() string {
	return c.location
}

// APIKey resolves the model API key from the environment. The key never lives
// in the config file itself.
func (m *ModelConfig) APIKey() (string, error) {
	env := m.APIKeyEnv
	if env == "" {
		env = defaultAPIKeyEnv
	}
	key := os.Getenv(env)
	if key == "" {
		return "", errors.Errorf("environment variable %s is not set", env)
	}
	return key, nil
}

// applyDefaults fills in zero-valued fields after parsing.
func (c *Config) applyDefaults() {
	if c.Model.Provider == "" {
		c.Model.Provider = defaultProvider
	}
	if c.Model.APIKeyEnv == "" {
		c.Model.APIKeyEnv = defaultAPIKeyEnv
	}
	if c.Model.BaseURL == "" {
		c.Model.BaseURL = defaultBaseURL
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = defaultMaxTokens
	}
	if c.Model.Temperature == 0 {
		c.Model.Temperature = defaultTemperature
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Model.Name == "" {
		return errors.Errorf("model.name is required")
	}
	if c.Model.Provider != defaultProvider {
		return errors.Errorf("unsupported provider %q (only %q is supported)", c.Model.Provider, defaultProvider)
	}
	if c.Model.MaxTokens < 1 {
		return errors.Errorf("model.max_tokens must be positive, got %d", c.Model.MaxTokens)
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 1 {
		return errors.Errorf("model.temperature must be in [0,1], got %v", c.Model.Temperature)
	}
	return nil
}
