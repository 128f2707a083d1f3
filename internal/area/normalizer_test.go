package area

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeParsesPair(t *testing.T) {
	var requestedAddress string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedAddress = r.URL.Query().Get("address")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pref": "京都府", "city": "京田辺市", "town": ""}`))
	}))
	defer server.Close()

	client := NewNormalizerClient(server.URL, testLogger())

	normalized, err := client.Normalize(context.Background(), "京田辺市")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requestedAddress != "京田辺市" {
		t.Fatalf("unexpected address parameter: %s", requestedAddress)
	}
	if normalized.Prefecture != "京都府" || normalized.City != "京田辺市" {
		t.Fatalf("unexpected result: %+v", normalized)
	}
}

func TestNormalizeAbsentFieldsAreEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pref": "京都府"}`))
	}))
	defer server.Close()

	client := NewNormalizerClient(server.URL, testLogger())

	normalized, err := client.Normalize(context.Background(), "京都")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normalized.City != "" {
		t.Fatalf("expected empty city, got %q", normalized.City)
	}
}

func TestNormalizeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewNormalizerClient(server.URL, testLogger())

	if _, err := client.Normalize(context.Background(), "京田辺市"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
