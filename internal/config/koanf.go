// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/entrata-webflow-sync/config.yaml",
	"/etc/entrata-webflow-sync/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds configuration from layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if exists)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps environment variable names to config paths. Anything not
// listed here is ignored by the env layer, which keeps unrelated process
// env vars out of the config tree.
var envMappings = map[string]string{
	"http_port":     "server.port",
	"read_timeout":  "server.read_timeout",
	"write_timeout": "server.write_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"entrata_api_key":              "entrata.api_key",
	"entrata_base_url":             "entrata.base_url",
	"entrata_org_id":               "entrata.org_id",
	"entrata_resource":             "entrata.resource",
	"entrata_method":               "entrata.method",
	"entrata_property_id_param":    "entrata.property_id_param",
	"entrata_include_availability": "entrata.include_availability",
	"entrata_include_pricing":      "entrata.include_pricing",
	"entrata_timeout":              "entrata.timeout",

	"webflow_token":    "webflow.token",
	"webflow_base_url": "webflow.base_url",
	"webflow_timeout":  "webflow.timeout",

	"properties":            "sync.properties",
	"sync_interval":         "sync.interval",
	"sync_run_on_start":     "sync.run_on_start",
	"sync_batch_size":       "sync.batch_size",
	"sync_batch_delay":      "sync.batch_delay",
	"sync_duplicate_policy": "sync.duplicate_policy",
}

// envTransformFunc maps environment variable names to koanf config paths.
//
// Examples:
//   - ENTRATA_API_KEY -> entrata.api_key
//   - WEBFLOW_TOKEN   -> webflow.token
//   - PROPERTIES      -> sync.properties
//
// Returns empty string for unknown variables, which koanf skips.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
