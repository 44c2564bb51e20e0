// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	calls    int
	mu       sync.Mutex
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.response, m.err
}

// Calls returns how many requests went through the transport.
func (m *MockRoundTripper) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// TokenRequest is a token endpoint call captured by [Provider].
type TokenRequest struct {
	Method        string
	Authorization string
	Form          url.Values
}

// Provider is a stub OAuth token endpoint that records every request and answers with a fixed status and JSON body.
type Provider struct {
	*httptest.Server

	Status int
	Body   any

	mu       sync.Mutex
	requests []TokenRequest
}

// NewProvider starts a stub token endpoint. The server is closed when the test ends.
func NewProvider(t *testing.T, status int, body any) *Provider {
	t.Helper()

	p := &Provider{Status: status, Body: body}
	p.Server = httptest.NewServer(http.HandlerFunc(p.serve))
	t.Cleanup(p.Server.Close)
	return p
}

func (p *Provider) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	p.mu.Lock()
	p.requests = append(p.requests, TokenRequest{
		Method:        r.Method,
		Authorization: r.Header.Get("Authorization"),
		Form:          r.PostForm,
	})
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(p.Status)
	json.NewEncoder(w).Encode(p.Body)
}

// Requests returns a copy of the captured token requests.
func (p *Provider) Requests() []TokenRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]TokenRequest(nil), p.requests...)
}

// TokenURL returns the stub's token endpoint URL.
func (p *Provider) TokenURL() string {
	return p.URL + "/api/token"
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
