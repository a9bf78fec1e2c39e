package imagesource

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Resolver turns a classified payload into raw image bytes. Remote
// fetches are bounded by the configured timeout and byte cap so that a
// slow or oversized source only costs its own image.
type Resolver struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

func NewResolver(timeout time.Duration, maxBytes int64) *Resolver {
	return &Resolver{
		client:   &http.Client{},
		timeout:  timeout,
		maxBytes: maxBytes,
	}
}

// Resolve fetches or decodes the payload bytes. KindUnsupported is the
// caller's responsibility to filter out beforehand.
func (r *Resolver) Resolve(ctx context.Context, p Payload) ([]byte, error) {
	switch p.Kind {
	case KindRemoteURL, KindURLObject:
		return r.fetch(ctx, p.URL)
	case KindDataURI, KindRawBase64:
		return decodeBase64(p.Base64)
	default:
		return nil, fmt.Errorf("unsupported image payload")
	}
}

func (r *Resolver) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	// Read one byte past the cap to tell "exactly at the limit" from
	// "over the limit".
	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", r.maxBytes)
	}

	return data, nil
}

func decodeBase64(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err == nil {
		return data, nil
	}

	// Some feeds strip padding.
	data, rawErr := base64.RawStdEncoding.DecodeString(payload)
	if rawErr == nil {
		return data, nil
	}

	return nil, fmt.Errorf("decode base64 image: %w", err)
}
