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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load loads a configuration file. The format is determined by extension:
// .json, .yaml/.yml, or .hcl; a .patchpal file tries YAML first, then HCL.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var cfg *Config

	if ext == ".patchpal" || filepath.Base(path) == ".patchpal" {
		cfg, err = loadYAML(data)
		if err != nil {
			cfg, err = loadHCL(data, path)
		}
		if err != nil {
			return nil, errors.Errorf("parsing %s as YAML or HCL: %w", path, err)
		}
	} else {
		switch ext {
		case ".json":
			cfg, err = loadJSON(data)
		case ".yaml", ".yml":
			cfg, err = loadYAML(data)
		case ".hcl":
			cfg, err = loadHCL(data, path)
		default:
			return nil, errors.Errorf("unsupported config extension %q", ext)
		}
		if err != nil {
			return nil, err
		}
	}

	cfg.location = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config at path, or returns Default() when the file
// does not exist.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return Load(ctx, path)
}

// loadJSON parses JSON configuration data.
func loadJSON(data []byte) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

// loadYAML parses YAML configuration data.
func loadYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// loadHCL parses HCL configuration data.
func loadHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	type hclModel struct {
		Provider    string   `hcl:"provider,optional"`
		Name        string   `hcl:"name"`
		APIKeyEnv   string   `hcl:"api_key_env,optional"`
		BaseURL     string   `hcl:"base_url,optional"`
		MaxTokens   int      `hcl:"max_tokens,optional"`
		Temperature *float64 `hcl:"temperature,optional"`
	}
	type hclScan struct {
		IgnoreDirs     []string `hcl:"ignore_dirs,optional"`
		IgnoreFiles    []string `hcl:"ignore_files,optional"`
		IgnorePatterns []string `hcl:"ignore_patterns,optional"`
	}
	type hclConfig struct {
		Model hclModel `hcl:"model,block"`
		Scan  *hclScan `hcl:"scan,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Model: ModelConfig{
			Provider:  hclCfg.Model.Provider,
			Name:      hclCfg.Model.Name,
			APIKeyEnv: hclCfg.Model.APIKeyEnv,
			BaseURL:   hclCfg.Model.BaseURL,
			MaxTokens: hclCfg.Model.MaxTokens,
		},
	}
	if hclCfg.Model.Temperature != nil {
		cfg.Model.Temperature = *hclCfg.Model.Temperature
	}
	if hclCfg.Scan != nil {
		cfg.Scan = &ScanConfig{
			IgnoreDirs:     hclCfg.Scan.IgnoreDirs,
			IgnoreFiles:    hclCfg.Scan.IgnoreFiles,
			IgnorePatterns: hclCfg.Scan.IgnorePatterns,
		}
	}
	return cfg, nil
}
