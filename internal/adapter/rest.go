// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package adapter implements resource adapters: clients able to attempt
// translating one identifier from one ontology type to another. Each
// adapter implements the engine's Adapter contract per the Strategy
// pattern; the registry decides which adapters serve which hops.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/metamap/internal/httputil"
	"github.com/pdiddy/metamap/pkg/types"
)

// RESTAdapter queries a JSON identifier-mapping service over HTTP. The
// endpoint is a URL template with {id}, {source}, and {target}
// placeholders, e.g.
//
//	https://mapping.example.org/v1/map/{source}/{target}/{id}
//
// The service answers with {"mappings": [{"target_id": ..., "confidence":
// ..., "metadata": {...}}]}. A 404 is a miss, not an error.
type RESTAdapter struct {
	name        string
	urlTemplate string
	apiKey      string
	client      *http.Client
	userAgent   string
}

// NewREST builds a RESTAdapter. apiKey may be empty; when set it is sent
// as an X-API-Key header.
func NewREST(name, urlTemplate, apiKey string, client *http.Client, httpCfg types.HTTPConfig) *RESTAdapter {
	if client == nil {
		client = &http.Client{Timeout: httpCfg.Timeout}
	}
	return &RESTAdapter{
		name:        name,
		urlTemplate: urlTemplate,
		apiKey:      apiKey,
		client:      client,
		userAgent:   httpCfg.UserAgent,
	}
}

// Name returns the resource identifier.
func (a *RESTAdapter) Name() string { return a.name }

// MapEntity queries the remote service for translations of id.
func (a *RESTAdapter) MapEntity(ctx context.Context, id string, sourceType, targetType types.OntologyType) ([]types.Mapping, error) {
	reqURL := strings.NewReplacer(
		"{id}", url.PathEscape(id),
		"{source}", url.PathEscape(sourceType),
		"{target}", url.PathEscape(targetType),
	).Replace(a.urlTemplate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "application/json")
	if a.apiKey != "" {
		req.Header.Set("X-API-Key", a.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, a.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", a.name, err)
	}
	defer resp.Body.Close()

	// The service reports unknown identifiers with 404.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", a.name, resp.StatusCode)
	}

	var body mappingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", a.name, err)
	}

	mappings := make([]types.Mapping, 0, len(body.Mappings))
	for _, m := range body.Mappings {
		if m.TargetID == "" {
			continue
		}
		confidence := m.Confidence
		// Services that report no score get full per-hop confidence.
		if confidence == 0 {
			confidence = 1.0
		}
		mappings = append(mappings, types.Mapping{
			TargetID:   m.TargetID,
			Confidence: confidence,
			Metadata:   m.Metadata,
		})
	}
	return mappings, nil
}

// Mapping service JSON structures.
type mappingResponse struct {
	Mappings []mappingEntry `json:"mappings"`
}

type mappingEntry struct {
	TargetID   string         `json:"target_id"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata"`
}
