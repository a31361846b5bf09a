package history

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchDecodesHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/history" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"time":"t0","logo":"AAA"},{"time":"t1","logo":"BBB"}]`))
	}))
	defer srv.Close()

	result := NewClient(srv.URL).Fetch(context.Background())
	if result.Err != nil {
		t.Fatalf("fetch: %v", result.Err)
	}
	if len(result.History) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(result.History))
	}
	if result.History[1].Logo != "BBB" {
		t.Fatalf("expected second payload BBB, got %q", result.History[1].Logo)
	}
}

func TestFetchEmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	result := NewClient(srv.URL).Fetch(context.Background())
	if result.Err != nil {
		t.Fatalf("empty array is a valid response: %v", result.Err)
	}
	if len(result.History) != 0 {
		t.Fatalf("expected empty history, got %+v", result.History)
	}
}

func TestFetchGzipBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`[{"time":"t0","logo":"AAA"}]`))
		_ = gz.Close()
	}))
	defer srv.Close()

	result := NewClient(srv.URL).Fetch(context.Background())
	if result.Err != nil {
		t.Fatalf("fetch gzip body: %v", result.Err)
	}
	if len(result.History) != 1 || result.History[0].Time != "t0" {
		t.Fatalf("unexpected history: %+v", result.History)
	}
}

func TestFetchNonOKStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	result := NewClient(srv.URL).Fetch(context.Background())
	if result.Err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestFetchMalformedBodyFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	result := NewClient(srv.URL).Fetch(context.Background())
	if result.Err == nil {
		t.Fatalf("expected error on malformed body")
	}
}

func TestFetchTransportErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	result := NewClient(srv.URL).Fetch(context.Background())
	if result.Err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestFetchAppliesLimit(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	result := NewClient(srv.URL, WithLimit(25)).Fetch(context.Background())
	if result.Err != nil {
		t.Fatalf("fetch: %v", result.Err)
	}
	if gotLimit != "25" {
		t.Fatalf("expected limit=25, got %q", gotLimit)
	}
}

func TestFetchIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/history/index" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"time":"t0"},{"time":"t1"}]`))
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL).FetchIndex(context.Background())
	if err != nil {
		t.Fatalf("fetch index: %v", err)
	}
	if len(entries) != 2 || entries[1].Time != "t1" {
		t.Fatalf("unexpected index: %+v", entries)
	}
}

func TestFetchSnapshotPNG(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/history/2019-03-01T10:00:00Z" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	data, err := NewClient(srv.URL).FetchSnapshotPNG(context.Background(), "2019-03-01T10:00:00Z")
	if err != nil {
		t.Fatalf("fetch snapshot: %v", err)
	}
	if string(data) != string(payload) {
		t.Fatalf("unexpected payload %v", data)
	}
}

func TestNewClientStripsQueryFromBaseURL(t *testing.T) {
	c := NewClient("http://localhost:3000/?play=true&showControls=false")
	if c.baseURL != "http://localhost:3000" {
		t.Fatalf("expected query stripped, got %q", c.baseURL)
	}
}
