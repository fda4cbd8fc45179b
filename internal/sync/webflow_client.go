// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/blackpixelca/entrata-webflow-sync/internal/config"
	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
)

// ItemCreator creates one batch of items in a destination collection.
// Implemented by WebflowClient for production and by mocks in tests.
type ItemCreator interface {
	CreateItems(ctx context.Context, collectionID string, items []models.DestinationItem) error
}

// WebflowClient handles communication with the Webflow CMS API.
//
// Items are always created, never matched against existing ones; repeated
// runs duplicate items unless the destination enforces uniqueness (see
// sync.duplicate_policy in config).
//
// Thread safety: safe for concurrent use; each call builds its own request.
type WebflowClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewWebflowClient creates a Webflow API client from configuration.
func NewWebflowClient(cfg config.WebflowConfig) *WebflowClient {
	return &WebflowClient{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// bulkCreateRequest is the bulk item-creation body.
type bulkCreateRequest struct {
	Items []models.DestinationItem `json:"items"`
}

// CreateItems issues one POST to the collection's bulk-create endpoint.
// The caller is responsible for keeping len(items) within the endpoint's
// per-request cap; see Publisher. A non-2xx response produces a
// *DestinationError carrying the HTTP status and body.
func (c *WebflowClient) CreateItems(ctx context.Context, collectionID string, items []models.DestinationItem) error {
	body, err := json.Marshal(bulkCreateRequest{Items: items})
	if err != nil {
		return fmt.Errorf("failed to encode webflow request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v2/collections/%s/items", c.baseURL, collectionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webflow request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("webflow request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &DestinationError{
			Status: resp.StatusCode,
			Body:   string(readBodyForError(resp.Body)),
		}
	}

	return nil
}
