// Package imagesource classifies the heterogeneous image payloads
// accepted by the ingest API and resolves each to raw bytes under
// bounded time and size.
package imagesource

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Kind is the tag of a classified image payload.
type Kind int

const (
	// KindUnsupported marks payloads matching none of the accepted
	// shapes; they are skipped, never escalated.
	KindUnsupported Kind = iota
	KindRemoteURL
	KindDataURI
	KindRawBase64
	KindURLObject
)

func (k Kind) String() string {
	switch k {
	case KindRemoteURL:
		return "remote_url"
	case KindDataURI:
		return "data_uri"
	case KindRawBase64:
		return "raw_base64"
	case KindURLObject:
		return "url_object"
	default:
		return "unsupported"
	}
}

// Payload is one classified image input.
type Payload struct {
	Kind Kind

	// URL is set for KindRemoteURL and KindURLObject.
	URL string

	// MIME and Base64 are set for KindDataURI; Base64 alone for
	// KindRawBase64.
	MIME   string
	Base64 string

	// ContentType is the optional hint carried by KindURLObject.
	ContentType string
}

var dataURIPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// urlObject is the object shape accepted from partner feeds.
type urlObject struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
}

// Classify inspects one raw JSON value and tags it as one of the four
// accepted shapes. Nothing is guessed: a value that fails every check
// comes back KindUnsupported.
func Classify(raw json.RawMessage) Payload {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch {
		case strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://"):
			return Payload{Kind: KindRemoteURL, URL: s}
		case strings.HasPrefix(s, "data:image"):
			matches := dataURIPattern.FindStringSubmatch(s)
			if matches == nil {
				return Payload{Kind: KindUnsupported}
			}
			return Payload{Kind: KindDataURI, MIME: matches[1], Base64: matches[2]}
		case s != "":
			return Payload{Kind: KindRawBase64, Base64: s}
		default:
			return Payload{Kind: KindUnsupported}
		}
	}

	var obj urlObject
	if err := json.Unmarshal(raw, &obj); err == nil && obj.URL != "" {
		return Payload{Kind: KindURLObject, URL: obj.URL, ContentType: obj.ContentType}
	}

	return Payload{Kind: KindUnsupported}
}
