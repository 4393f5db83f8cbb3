package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	return &Client{
		baseURL: url,
		apiKey:  "test-key",
		http:    &http.Client{Timeout: 2 * time.Second},
	}
}

func TestLookupStock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/stock/lookup" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req struct {
			SKUs []string `json:"skus"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.SKUs) != 1 || req.SKUs[0] != "SKU-001" {
			t.Errorf("skus = %v", req.SKUs)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": map[string][]VariantStock{
				"SKU-001": {{SKU: "SKU-001", Variant: "M", Quantity: 12}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	results, err := client.LookupStock(context.Background(), []string{"SKU-001"})
	if err != nil {
		t.Fatalf("LookupStock: %v", err)
	}

	variants := results["SKU-001"]
	if len(variants) != 1 || variants[0].Quantity != 12 {
		t.Errorf("results = %+v", results)
	}
}

func TestKnownSKU(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": map[string][]VariantStock{
				"KNOWN": {{SKU: "KNOWN", Quantity: 3}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	known, err := client.KnownSKU(context.Background(), "KNOWN")
	if err != nil {
		t.Fatalf("KnownSKU: %v", err)
	}
	if !known {
		t.Error("KnownSKU(KNOWN) = false, want true")
	}

	unknown, err := client.KnownSKU(context.Background(), "MISSING")
	if err != nil {
		t.Fatalf("KnownSKU: %v", err)
	}
	if unknown {
		t.Error("KnownSKU(MISSING) = true, want false")
	}
}

func TestLookupStockServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.LookupStock(context.Background(), []string{"SKU-001"}); err == nil {
		t.Error("expected error on 502, got nil")
	}
}

func TestNilClientNotConfigured(t *testing.T) {
	var client *Client
	if _, err := client.LookupStock(context.Background(), []string{"SKU-001"}); err != ErrNotConfigured {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
