package duckhttp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// testConfig builds a Config pointing at a test server.
func testConfig(t *testing.T, server *httptest.Server) Config {
	t.Helper()

	u, err := url.Parse(server.URL)

	assert.NoError(t, err)

	port, err := strconv.Atoi(u.Port())

	assert.NoError(t, err)

	return Config{Host: u.Hostname(), Port: port}
}

func TestClientSendHeaders(t *testing.T) {
	var (
		contentType string
		apiKey      string
		requestID   string
		body        string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		apiKey = r.Header.Get("X-API-Key")
		requestID = r.Header.Get("X-Request-Id")

		data, _ := io.ReadAll(r.Body)
		body = string(data)

		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	config := testConfig(t, server)
	config.Password = "secretkey"

	_, err := NewClient(config).Send(context.Background(), "SELECT 1")

	assert.NoError(t, err)
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, "secretkey", apiKey)
	assert.NotZero(t, requestID)
	assert.Equal(t, "SELECT 1", body)
}

func TestClientSendWithoutCredential(t *testing.T) {
	var sawHeader bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["X-Api-Key"]
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewClient(testConfig(t, server)).Send(context.Background(), "SELECT 1")

	assert.NoError(t, err)
	assert.False(t, sawHeader)
}

func TestClientSendNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("syntax error near SELEC"))
	}))
	defer server.Close()

	_, err := NewClient(testConfig(t, server)).Send(context.Background(), "SELEC 1")

	var transportErr *TransportError

	assert.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusBadRequest, transportErr.StatusCode)
	assert.Equal(t, "syntax error near SELEC", string(transportErr.Body))
}

func TestClientSendNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	config := testConfig(t, server)
	server.Close()

	_, err := NewClient(config).Send(context.Background(), "SELECT 1")

	var transportErr *TransportError

	assert.True(t, errors.As(err, &transportErr))
	assert.Equal(t, 0, transportErr.StatusCode)
	assert.Error(t, transportErr.Err)
}
