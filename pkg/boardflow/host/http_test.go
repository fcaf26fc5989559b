package host

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClient_Do tests a basic round trip with headers and body.
func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"k":"v"}`), body)

		w.Header().Set("X-Server", "test")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     server.URL,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    []byte(`{"k":"v"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, []byte("ok"), resp.Body)
	assert.Equal(t, "test", resp.Headers["X-Server"])
}

// TestClient_Do_DefaultsToGet tests the empty-method default.
func TestClient_Do_DefaultsToGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
	}))
	defer server.Close()

	_, err := NewClient().Do(context.Background(), Request{URL: server.URL})
	assert.NoError(t, err)
}

// TestClient_Do_NonSuccessStatusIsNotError tests the node-decides contract.
func TestClient_Do_NonSuccessStatusIsNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	resp, err := NewClient().Do(context.Background(), Request{URL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusGone, resp.Status)
}

// TestClient_Do_EmptyURL tests input validation.
func TestClient_Do_EmptyURL(t *testing.T) {
	_, err := NewClient().Do(context.Background(), Request{})
	assert.ErrorContains(t, err, "empty url")
}

// TestClient_Do_RespectsContext tests cancellation of in-flight calls.
func TestClient_Do_RespectsContext(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient().Do(ctx, Request{URL: server.URL})
	assert.Error(t, err)
}

// TestClient_Options tests client configuration.
func TestClient_Options(t *testing.T) {
	custom := &http.Client{}
	c := NewClient(WithHTTPClient(custom), WithTimeout(5*time.Second))

	assert.Same(t, custom, c.httpc)
	assert.Equal(t, 5*time.Second, c.timeout)

	// Nil and non-positive values are ignored.
	c = NewClient(WithHTTPClient(nil), WithTimeout(0))
	assert.NotNil(t, c.httpc)
	assert.Equal(t, DefaultTimeout, c.timeout)
}
