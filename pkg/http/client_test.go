package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_SendAndParse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data_mode":"mock"}`))
		case "/broken":
			_, _ = w.Write([]byte(`{"data_mode":`))
		default:
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	c := NewClient(WithTimeout(2 * time.Second))
	ctx := context.Background()

	var out struct {
		DataMode string `json:"data_mode"`
	}
	if err := c.SendAndParse(ctx, &RequestOptions{Method: MethodGet, URL: server.URL + "/ok"}, &out); err != nil {
		t.Fatalf("ok: %v", err)
	}
	if out.DataMode != "mock" {
		t.Errorf("DataMode = %q", out.DataMode)
	}

	err := c.SendAndParse(ctx, &RequestOptions{Method: MethodGet, URL: server.URL + "/missing"}, &out)
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("want *HTTPError, got %T %v", err, err)
	}
	if he.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d", he.Status)
	}
	if ErrorKind(err) != "http" {
		t.Errorf("ErrorKind = %q", ErrorKind(err))
	}

	err = c.SendAndParse(ctx, &RequestOptions{Method: MethodGet, URL: server.URL + "/broken"}, &out)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("want *DecodeError, got %T %v", err, err)
	}
	if ErrorKind(err) != "decode" {
		t.Errorf("ErrorKind = %q", ErrorKind(err))
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(WithTimeout(time.Second))
	err := c.SendAndParse(context.Background(), &RequestOptions{Method: MethodGet, URL: url}, nil)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want *TransportError, got %T %v", err, err)
	}
	if ErrorKind(err) != "transport" {
		t.Errorf("ErrorKind = %q", ErrorKind(err))
	}
}

func TestClient_TruncatedBodyIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", "512")
		_, _ = w.Write([]byte(`{"data_mode":"mo`))
	}))
	defer server.Close()

	c := NewClient(WithTimeout(2 * time.Second))
	var out map[string]any
	err := c.SendAndParse(context.Background(), &RequestOptions{Method: MethodGet, URL: server.URL}, &out)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want *TransportError, got %T %v", err, err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v, want it to wrap io.ErrUnexpectedEOF", err)
	}
	if ErrorKind(err) != "transport" {
		t.Errorf("ErrorKind = %q", ErrorKind(err))
	}
}

func TestClient_PostsJSONBody(t *testing.T) {
	var gotCT string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient()
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method: MethodPost,
		URL:    server.URL,
		Body:   map[string]string{"data_mode": "open"},
	}, nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if gotCT != "application/json" {
		t.Errorf("Content-Type = %q", gotCT)
	}
}
