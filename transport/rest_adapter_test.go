package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/parkhub/go-client/core"
)

func TestRESTAdapterDefaultsMethodAndMergesQuery(t *testing.T) {
	var gotMethod string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	res, err := adapter.Do(context.Background(), core.TransportRequest{
		URL: server.URL + "/api/v1/spots?zone=north",
		Query: map[string]string{
			"level": " 2 ",
			"":      "dropped",
		},
	})
	if err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}
	if gotMethod != http.MethodGet {
		t.Fatalf("expected empty method to default to GET, got %q", gotMethod)
	}
	if got := gotQuery["zone"]; len(got) != 1 || got[0] != "north" {
		t.Fatalf("expected url query to survive the merge, got %v", gotQuery)
	}
	if got := gotQuery["level"]; len(got) != 1 || got[0] != "2" {
		t.Fatalf("expected request query values to be trimmed, got %v", gotQuery)
	}
	if _, ok := gotQuery[""]; ok {
		t.Fatalf("expected blank query keys to be dropped, got %v", gotQuery)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
}

func TestRESTAdapterAppliesRequestHeaders(t *testing.T) {
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	_, err := adapter.Do(context.Background(), core.TransportRequest{
		Method: http.MethodPost,
		URL:    server.URL + "/api/v1/spots",
		Headers: map[string]string{
			"Content-Type": " application/json ",
			"":             "dropped",
		},
		Body: []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}
	if got := gotHeaders.Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected header values to be trimmed, got %q", got)
	}
}

func TestRESTAdapterFlattensResponseHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", "req-1")
		w.Header().Add("Vary", "Accept")
		w.Header().Add("Vary", "Origin")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	res, err := adapter.Do(context.Background(), core.TransportRequest{
		Method: http.MethodGet,
		URL:    server.URL + "/status",
	})
	if err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}
	if got := res.Headers["X-Request-Id"]; got != "req-1" {
		t.Fatalf("expected response headers to be flattened, got %v", res.Headers)
	}
	if got := res.Headers["Vary"]; got != "Accept,Origin" {
		t.Fatalf("expected multi-value headers joined with commas, got %q", got)
	}
}

func TestRESTAdapterResponseBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(strings.Repeat("a", 64)))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	_, err := adapter.Do(context.Background(), core.TransportRequest{
		Method:               http.MethodGet,
		URL:                  server.URL + "/status",
		MaxResponseBodyBytes: 16,
	})
	if err == nil {
		t.Fatal("expected oversized response to be rejected")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected a rich error, got %T", err)
	}
	if rich.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %s", rich.Category)
	}
	if !strings.Contains(rich.Message, "exceeds") {
		t.Fatalf("unexpected error message: %s", rich.Message)
	}
}

func TestRESTAdapterRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	adapter := NewRESTAdapter(server.Client())
	_, err := adapter.Do(context.Background(), core.TransportRequest{
		Method:  http.MethodGet,
		URL:     server.URL + "/status",
		Timeout: 25 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected the request to time out")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected a rich error, got %T", err)
	}
	if rich.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %s", rich.Category)
	}
}

func TestRESTAdapterRejectsMissingURL(t *testing.T) {
	adapter := NewRESTAdapter(http.DefaultClient)
	_, err := adapter.Do(context.Background(), core.TransportRequest{Method: http.MethodGet})
	if err == nil {
		t.Fatal("expected an error for a missing url")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected a rich error, got %T", err)
	}
	if rich.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input category, got %s", rich.Category)
	}
}

func TestRESTAdapterRequiresClient(t *testing.T) {
	adapter := &RESTAdapter{}
	_, err := adapter.Do(context.Background(), core.TransportRequest{URL: "http://localhost/status"})
	if err == nil {
		t.Fatal("expected an error when no http client is configured")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected a rich error, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %s", rich.Category)
	}
}
