package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jgfrigo2/medtracker2/internal/model"
)

func testCreds() Credentials { return Credentials{APIKey: "key-1", BinID: "bin-1"} }

func TestFetchDecodesDocument(t *testing.T) {
	t.Parallel()
	var gotPath, gotKey, gotMeta string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Master-Key")
		gotMeta = r.Header.Get("X-Bin-Meta")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"healthData":      map[string]any{"2024-06-01": map[string]any{"08:00": map[string]any{"value": 7, "medications": []string{"Medicina A"}, "comments": ""}}},
			"medications":     []string{"Medicina A"},
			"standardPattern": map[string]any{},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	b, err := c.Fetch(context.Background(), testCreds())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotPath != "/bin-1/latest" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "key-1" || gotMeta != "false" {
		t.Fatalf("headers = %q / %q", gotKey, gotMeta)
	}
	if v, ok := b.HealthData["2024-06-01"]["08:00"].Value.Get(); !ok || v != 7 {
		t.Fatalf("decoded value = %v", b.HealthData["2024-06-01"]["08:00"].Value)
	}
}

func TestFetchNotFoundReturnsDefault(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	b, err := c.Fetch(context.Background(), testCreds())
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if b.HealthData == nil || b.Medications == nil || b.Pattern == nil {
		t.Fatalf("default bundle has nil collections: %+v", b)
	}
	if len(b.HealthData) != 0 {
		t.Fatalf("default bundle not empty: %+v", b)
	}
}

func TestFetchFailureStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.Fetch(context.Background(), testCreds())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", fe.StatusCode)
	}
}

func TestReplaceSendsFullBundle(t *testing.T) {
	t.Parallel()
	var gotPath, gotKey, gotType string
	var gotBody model.Bundle
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Master-Key")
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer srv.Close()

	bundle := model.DefaultBundle()
	bundle.Medications = []string{"Aspirin"}

	c := New(srv.URL, 5*time.Second)
	if err := c.Replace(context.Background(), testCreds(), bundle); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if gotPath != "/bin-1" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "key-1" || gotType != "application/json" {
		t.Fatalf("headers = %q / %q", gotKey, gotType)
	}
	if len(gotBody.Medications) != 1 || gotBody.Medications[0] != "Aspirin" {
		t.Fatalf("body = %+v", gotBody)
	}
}

func TestReplaceFailureStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	err := c.Replace(context.Background(), testCreds(), model.DefaultBundle())
	var se *SaveError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SaveError", err)
	}
	if se.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d", se.StatusCode)
	}
}

func TestReplaceTransportError(t *testing.T) {
	t.Parallel()
	c := New("http://127.0.0.1:1", 200*time.Millisecond)
	err := c.Replace(context.Background(), testCreds(), model.DefaultBundle())
	var se *SaveError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SaveError", err)
	}
	if se.StatusCode != 0 {
		t.Fatalf("transport error carries status %d", se.StatusCode)
	}
}

func TestIsRecoverable(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", &SaveError{StatusCode: 500}, true},
		{"rate limited", &SaveError{StatusCode: 429}, true},
		{"request timeout", &FetchError{StatusCode: 408}, true},
		{"forbidden", &SaveError{StatusCode: 403}, false},
		{"bad request", &FetchError{StatusCode: 400}, false},
		{"transport", &SaveError{Underlying: errors.New("refused")}, true},
		{"plain error", errors.New("boom"), true},
	}
	for _, tc := range cases {
		if got := IsRecoverable(tc.err); got != tc.want {
			t.Errorf("%s: IsRecoverable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
