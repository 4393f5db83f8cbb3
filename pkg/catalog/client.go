package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

var ErrNotConfigured = errors.New("catalog API not configured")

// VariantStock is the per-SKU stock breakdown returned by the external catalog.
type VariantStock struct {
	SKU      string `json:"sku"`
	Variant  string `json:"variant"`
	Quantity int    `json:"quantity"`
}

// Client talks to the external item catalog service. Used by intake-side
// validation only; the state machine never depends on it.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewFromEnv builds a client from CATALOG_API_URL / CATALOG_API_KEY.
// Returns nil when no URL is configured; callers treat a nil client as
// "catalog validation disabled".
func NewFromEnv() *Client {
	baseURL := os.Getenv("CATALOG_API_URL")
	if baseURL == "" {
		return nil
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  os.Getenv("CATALOG_API_KEY"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type lookupRequest struct {
	SKUs []string `json:"skus"`
}

type lookupResponse struct {
	Results map[string][]VariantStock `json:"results"`
}

// LookupStock returns per-SKU variant stock for the given SKUs.
func (c *Client) LookupStock(ctx context.Context, skus []string) (map[string][]VariantStock, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(lookupRequest{SKUs: skus})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/stock/lookup", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog lookup failed: status %d", resp.StatusCode)
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded.Results, nil
}

// KnownSKU reports whether the catalog recognizes the given SKU.
func (c *Client) KnownSKU(ctx context.Context, sku string) (bool, error) {
	results, err := c.LookupStock(ctx, []string{sku})
	if err != nil {
		return false, err
	}
	variants, ok := results[sku]
	return ok && len(variants) > 0, nil
}
