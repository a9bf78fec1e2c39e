package imagesource

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBase64Payloads(t *testing.T) {
	r := NewResolver(time.Second, 1024)

	original := []byte("fake image bytes")
	encoded := base64.StdEncoding.EncodeToString(original)

	data, err := r.Resolve(context.Background(), Payload{Kind: KindRawBase64, Base64: encoded})
	require.NoError(t, err)
	assert.Equal(t, original, data)

	data, err = r.Resolve(context.Background(), Payload{Kind: KindDataURI, MIME: "image/png", Base64: encoded})
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestResolveBase64WithoutPadding(t *testing.T) {
	r := NewResolver(time.Second, 1024)

	original := []byte("unpadded")
	encoded := base64.RawStdEncoding.EncodeToString(original)

	data, err := r.Resolve(context.Background(), Payload{Kind: KindRawBase64, Base64: encoded})
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestResolveRemoteURL(t *testing.T) {
	body := []byte("remote image bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	r := NewResolver(time.Second, 1024)

	data, err := r.Resolve(context.Background(), Payload{Kind: KindRemoteURL, URL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, body, data)
}

func TestResolveRemoteURLOversize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	r := NewResolver(time.Second, 1024)

	_, err := r.Resolve(context.Background(), Payload{Kind: KindRemoteURL, URL: server.URL})
	assert.ErrorContains(t, err, "byte limit")
}

func TestResolveRemoteURLBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	r := NewResolver(time.Second, 1024)

	_, err := r.Resolve(context.Background(), Payload{Kind: KindRemoteURL, URL: server.URL})
	assert.ErrorContains(t, err, "unexpected status")
}

func TestResolveRemoteURLTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	r := NewResolver(20*time.Millisecond, 1024)

	_, err := r.Resolve(context.Background(), Payload{Kind: KindRemoteURL, URL: server.URL})
	assert.Error(t, err)
}

func TestResolveUnsupported(t *testing.T) {
	r := NewResolver(time.Second, 1024)

	_, err := r.Resolve(context.Background(), Classify(json.RawMessage(`42`)))
	assert.Error(t, err)
}
