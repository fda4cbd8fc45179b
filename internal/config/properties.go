// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package config

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
)

// ConfigError indicates malformed property configuration. It is fatal to
// the whole run and is raised before any network call is made.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("property configuration: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("property configuration: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseProperties parses the PROPERTIES configuration value: a JSON array
// of property-to-collection mappings. Input order is preserved and
// determines sync order.
//
// Returns a *ConfigError if the value is not a JSON array or any entry is
// missing its source property or destination collection identifier.
func ParseProperties(raw string) ([]models.PropertyConfig, error) {
	if raw == "" {
		return nil, &ConfigError{Reason: "PROPERTIES is empty"}
	}

	var props []models.PropertyConfig
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, &ConfigError{Reason: "PROPERTIES is not a valid JSON array", Err: err}
	}

	for i, p := range props {
		if p.SourcePropertyID == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("entry %d is missing sourcePropertyId", i)}
		}
		if p.DestCollectionID == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("entry %d is missing destCollectionId", i)}
		}
	}

	return props, nil
}
