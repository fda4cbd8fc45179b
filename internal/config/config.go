// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

// Package config loads and validates service configuration.
//
// Configuration is layered with Koanf: struct defaults, then an optional
// YAML config file, then environment variables (highest priority). The
// property list itself arrives as a JSON-array string (PROPERTIES) and is
// parsed separately by ParseProperties.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all runtime configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Entrata EntrataConfig `koanf:"entrata"`
	Webflow WebflowConfig `koanf:"webflow"`
	Sync    SyncConfig    `koanf:"sync"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// EntrataConfig holds upstream Entrata API settings.
//
// Resource, Method and PropertyIDParam exist because the upstream contract
// has drifted across integrations: method names, singular vs plural
// property-id parameters, and result nesting all vary. Keeping them
// configurable means shape drift is an ops change, not a code change.
type EntrataConfig struct {
	APIKey  string `koanf:"api_key" validate:"required"`
	BaseURL string `koanf:"base_url" validate:"required,url"`
	OrgID   string `koanf:"org_id" validate:"required"`

	// Resource is the path segment under /v1, e.g. "propertyunits".
	Resource string `koanf:"resource" validate:"required"`

	// Method is the JSON-RPC method name, e.g. "getUnitTypes".
	Method string `koanf:"method" validate:"required"`

	// PropertyIDParam is the params key carrying the property identifier.
	PropertyIDParam string `koanf:"property_id_param" validate:"required"`

	// IncludeAvailability and IncludePricing are forwarded as method params.
	IncludeAvailability bool `koanf:"include_availability"`
	IncludePricing      bool `koanf:"include_pricing"`

	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// WebflowConfig holds destination Webflow API settings.
type WebflowConfig struct {
	Token   string        `koanf:"token" validate:"required"`
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// SyncConfig holds sync pipeline settings.
type SyncConfig struct {
	// Properties is the raw JSON array of property configurations.
	Properties string `koanf:"properties" validate:"required"`

	// Interval between scheduled runs. 0 disables the internal scheduler
	// (an external timer can still hit POST /sync).
	Interval time.Duration `koanf:"interval"`

	// RunOnStart triggers one sync immediately at startup.
	RunOnStart bool `koanf:"run_on_start"`

	// BatchSize is the number of items per bulk-create request.
	// Webflow's bulk endpoint caps at 100 items per request.
	BatchSize int `koanf:"batch_size" validate:"min=1,max=100"`

	// BatchDelay is the pause between consecutive batches.
	BatchDelay time.Duration `koanf:"batch_delay" validate:"min=0"`

	// DuplicatePolicy controls what happens to items from previous runs.
	// Only "create" is implemented: every run creates new items and relies
	// on the destination for any uniqueness enforcement. The setting exists
	// so the policy is explicit and an upsert mode has a seam to land in.
	DuplicatePolicy string `koanf:"duplicate_policy" validate:"oneof=create"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 10 * time.Minute, // a manual sync run completes within the response
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Entrata: EntrataConfig{
			Resource:            "propertyunits",
			Method:              "getUnitTypes",
			PropertyIDParam:     "propertyId",
			IncludeAvailability: true,
			IncludePricing:      true,
			Timeout:             30 * time.Second,
		},
		Webflow: WebflowConfig{
			BaseURL: "https://api.webflow.com",
			Timeout: 30 * time.Second,
		},
		Sync: SyncConfig{
			Interval:        6 * time.Hour,
			RunOnStart:      false,
			BatchSize:       100,
			BatchDelay:      time.Second,
			DuplicatePolicy: "create",
		},
	}
}

// Validate checks the configuration using go-playground/validator tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid configuration: field %s failed %q validation", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
