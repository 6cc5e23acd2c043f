package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func assertKind(t *testing.T, err error, want FeedErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %v, got nil", want)
	}
	var fe *FeedError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FeedError, got %T: %v", err, err)
	}
	if fe.Kind != want {
		t.Errorf("expected kind %v, got %v (%v)", want, fe.Kind, fe)
	}
}

func newTestClient(url string) *GoldClient {
	return &GoldClient{
		URL:    url,
		Client: &http.Client{Timeout: time.Second},
	}
}

func TestFetchSuccess(t *testing.T) {
	body := `{"code":200,"msg":"","data":[],"time":"2024-01-01"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	raw, err := newTestClient(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != body {
		t.Errorf("expected raw body %q, got %q", body, string(raw))
	}
}

func TestFetchNon200Status(t *testing.T) {
	// Even a parseable body must not be decoded on a bad status.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"code":200,"data":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	assertKind(t, err, KindHTTPStatus)
}

func TestFetchInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	assertKind(t, err, KindDecode)
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Fetch(context.Background())
	assertKind(t, err, KindNetwork)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"code":200,"data":[]}`))
	}))
	defer srv.Close()

	client := &GoldClient{
		URL:    srv.URL,
		Client: &http.Client{Timeout: 30 * time.Millisecond},
	}
	_, err := client.Fetch(context.Background())
	assertKind(t, err, KindNetwork)
}

func TestFetchContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"code":200,"data":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Fetch(ctx)
	assertKind(t, err, KindNetwork)
}
