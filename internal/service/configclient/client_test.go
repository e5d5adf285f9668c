package configclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpx "Wallboard/pkg/http"
)

// fakeBackend mimics the admin endpoint: GET returns the current mode, POST
// accepts wind/open/mock and rejects anything else with 400.
func fakeBackend(t *testing.T, mode *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/config" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
		case http.MethodPost:
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			switch body["data_mode"] {
			case "wind", "open", "mock":
				*mode = body["data_mode"]
			default:
				http.Error(w, `{"detail":"Invalid data_mode"}`, http.StatusBadRequest)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if *mode == "" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"data_mode": *mode})
	}))
}

func TestClient_GetAndSet(t *testing.T) {
	mode := "wind"
	srv := fakeBackend(t, &mode)
	defer srv.Close()

	c := New(httpx.NewClient(), srv.URL, "/config")
	rc, err := c.Get(context.Background())
	if err != nil || rc.DataMode != "wind" {
		t.Fatalf("Get = %+v, %v", rc, err)
	}

	rc, err = c.SetDataMode(context.Background(), "open")
	if err != nil || rc.DataMode != "open" {
		t.Fatalf("SetDataMode = %+v, %v", rc, err)
	}
	if mode != "open" {
		t.Fatalf("backend mode = %q", mode)
	}
}

func TestClient_GetDefaultsMissingMode(t *testing.T) {
	mode := ""
	srv := fakeBackend(t, &mode)
	defer srv.Close()

	rc, err := New(httpx.NewClient(), srv.URL, "/config").Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rc.DataMode != "mock" {
		t.Fatalf("DataMode = %q, want mock", rc.DataMode)
	}
}

func TestClient_SetRejectsUnknownModeLocally(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	_, err := New(httpx.NewClient(), srv.URL, "/config").SetDataMode(context.Background(), "invalid")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if calls != 0 {
		t.Fatalf("backend called %d times for an invalid mode", calls)
	}
}

func TestClient_SetSurfacesBackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := New(httpx.NewClient(), srv.URL, "/config").SetDataMode(context.Background(), "mock")
	var he *httpx.HTTPError
	if !errors.As(err, &he) || he.Status != http.StatusBadRequest {
		t.Fatalf("err = %v, want HTTPError 400", err)
	}
}
