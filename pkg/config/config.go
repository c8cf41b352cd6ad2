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
	"context"
	"fmt"
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

// 🗂️ DefaultFileTypes is the extension allowlist used when none is configured
var DefaultFileTypes = []string{"jpg", "dng", "arw"}

// 🔌 Parser is the interface for config file parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete run configuration. Immutable for the
// duration of one run.
type Config struct {
	Source         string   `json:"source" yaml:"source" hcl:"source,optional"`
	Destination    string   `json:"destination" yaml:"destination" hcl:"destination,optional"`
	FileTypes      []string `json:"filetypes,omitempty" yaml:"filetypes,omitempty" hcl:"filetypes,optional"`
	IgnorePatterns []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" hcl:"ignore_patterns,optional"`
	DryRun         bool     `json:"dryrun,omitempty" yaml:"dryrun,omitempty" hcl:"dryrun,optional"`
	Verbose        bool     `json:"verbose,omitempty" yaml:"verbose,omitempty" hcl:"verbose,optional"`
}

// 🎯 Load loads the configuration from a file. Validation happens separately
// because a file may supply only part of the configuration, with the rest
// coming from command-line flags.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and normalizes it
func (cfg *Config) Validate() error {
	// Check required fields
	if cfg.Source == "" {
		return errors.Errorf("source is required")
	}
	if cfg.Destination == "" {
		return errors.Errorf("destination is required")
	}

	// Clean up paths
	cfg.Source = filepath.Clean(cfg.Source)
	cfg.Destination = filepath.Clean(cfg.Destination)

	// Normalize the allowlist: lowercase, no leading dot, no empty entries
	normalized := make([]string, 0, len(cfg.FileTypes))
	for _, ft := range cfg.FileTypes {
		ft = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ft), "."))
		if ft == "" {
			continue
		}
		normalized = append(normalized, ft)
	}
	cfg.FileTypes = normalized

	// Set defaults
	if len(cfg.FileTypes) == 0 {
		cfg.FileTypes = append([]string(nil), DefaultFileTypes...)
	}

	return nil
}

// 🗂️ AllowedTypes returns the allowlist as a set keyed on the normalized
// extension (lowercase, no leading dot)
func (cfg *Config) AllowedTypes() map[string]bool {
	allowed := make(map[string]bool, len(cfg.FileTypes))
	for _, ft := range cfg.FileTypes {
		allowed[strings.ToLower(strings.TrimPrefix(ft, "."))] = true
	}
	return allowed
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := "copy"
	if cfg.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s -> %s [%s] (%s)", cfg.Source, cfg.Destination, strings.Join(cfg.FileTypes, ","), mode)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}
