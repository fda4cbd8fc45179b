// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/blackpixelca/entrata-webflow-sync/internal/config"
	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
)

// maxErrorBodySize limits the response body read for error reporting.
// Prevents unbounded allocation on large error responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// RecordFetcher fetches all source records for one property.
// Implemented by EntrataClient for production and by mocks in tests.
type RecordFetcher interface {
	FetchRecords(ctx context.Context, propertyID string) ([]models.SourceRecord, error)
}

// EntrataClient handles communication with the Entrata HTTP API.
//
// Each FetchRecords call issues exactly one synchronous POST; there is no
// pagination and no retry. The request is JSON-RPC shaped, authenticated
// with the X-Api-Key header, and the method name, resource path and
// property-id parameter key all come from configuration because the
// upstream contract varies across API versions.
//
// Thread safety: safe for concurrent use; each call builds its own request.
type EntrataClient struct {
	baseURL string
	orgID   string
	apiKey  string
	cfg     config.EntrataConfig
	client  *http.Client

	// probes locates the record array in the response; defaults to
	// DefaultRecordProbes.
	probes []RecordProbe
}

// NewEntrataClient creates an Entrata API client from configuration.
func NewEntrataClient(cfg config.EntrataConfig) *EntrataClient {
	return &EntrataClient{
		baseURL: cfg.BaseURL,
		orgID:   cfg.OrgID,
		apiKey:  cfg.APIKey,
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		probes:  DefaultRecordProbes,
	}
}

// rpcRequest is the JSON-RPC-shaped Entrata request body.
type rpcRequest struct {
	Auth      rpcAuth   `json:"auth"`
	RequestID string    `json:"requestId"`
	Method    rpcMethod `json:"method"`
}

type rpcAuth struct {
	Type string `json:"type"`
}

type rpcMethod struct {
	Name   string                 `json:"name"`
	Params map[string]interface{} `json:"params"`
}

// rpcEnvelope is the outer response wrapper. The shape of Result below
// "response.result" is not stable, so it stays untyped until extraction.
type rpcEnvelope struct {
	Response struct {
		Result interface{} `json:"result"`
	} `json:"response"`
}

// FetchRecords fetches all unit/unit-type/floorplan records for one
// property. A non-2xx response produces an *UpstreamError carrying the
// HTTP status and body; response shape drift never produces an error (see
// ExtractRecords).
func (c *EntrataClient) FetchRecords(ctx context.Context, propertyID string) ([]models.SourceRecord, error) {
	params := map[string]interface{}{
		c.cfg.PropertyIDParam: propertyID,
	}
	if c.cfg.IncludeAvailability {
		params["includeUnitsAvailability"] = "1"
	}
	if c.cfg.IncludePricing {
		params["includePricing"] = "1"
	}

	body, err := json.Marshal(rpcRequest{
		Auth:      rpcAuth{Type: "apikey"},
		RequestID: "1",
		Method: rpcMethod{
			Name:   c.cfg.Method,
			Params: params,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode entrata request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/v1/%s", c.baseURL, c.orgID, c.cfg.Resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create entrata request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("entrata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{
			Status: resp.StatusCode,
			Body:   string(readBodyForError(resp.Body)),
		}
	}

	var envelope rpcEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode entrata response: %w", err)
	}

	return ExtractRecords(envelope.Response.Result, c.probes), nil
}
