package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openpdfa/openpdfa/pkg/types"
)

func TestConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/convert" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("expected API key header, got %q", got)
		}

		var req types.ConvertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.PDF != "aW5wdXQ=" {
			t.Errorf("unexpected payload %q", req.PDF)
		}

		json.NewEncoder(w).Encode(types.ConvertResponse{Success: true, PDF: "b3V0cHV0"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	out, err := c.Convert(context.Background(), "aW5wdXQ=")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if out != "b3V0cHV0" {
		t.Errorf("got %q, want b3V0cHV0", out)
	}
}

func TestConvertFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
		json.NewEncoder(w).Encode(types.ConvertResponse{Success: false, Error: "conversion exceeded the 2m0s timeout"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Convert(context.Background(), "aW5wdXQ="); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "").Health(context.Background()); err != nil {
		t.Fatalf("Health returned error: %v", err)
	}
}

func TestConversions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("expected limit=5, got %q", got)
		}
		json.NewEncoder(w).Encode([]types.ConversionRecord{{ID: "a", Status: "ok"}})
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL, "").Conversions(context.Background(), 5)
	if err != nil {
		t.Fatalf("Conversions returned error: %v", err)
	}
	if len(records) != 1 || records[0].Status != "ok" {
		t.Errorf("unexpected records %+v", records)
	}
}
