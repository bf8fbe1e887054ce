// Package media decides which storage tier serves a media slot.
package media

import (
	"context"
	"errors"

	"portfolio_backend/pkg/apperrors"
)

// Channels exposes the three storage tiers of one media slot
type Channels interface {
	ExternalURL() string
	FileHandle() string
	Blob() []byte
	MimeType() string
	FileName() string
}

// URLResolver turns a managed-file handle into a public URL
type URLResolver interface {
	GetURL(ctx context.Context, handle string) (string, error)
}

type Kind string

const (
	KindNone     Kind = "none"
	KindExternal Kind = "external"
	KindFile     Kind = "file"
	KindBlob     Kind = "blob"
)

// DefaultMime is reported for blobs stored without a MIME type
const DefaultMime = "application/octet-stream"

// Resolved is the single authoritative source of a slot
type Resolved struct {
	Kind       Kind
	URL        string
	Handle     string
	Data       []byte
	MimeType   string
	Filename   string
	IsExternal bool
}

// Resolve applies the precedence external URL > managed file > legacy blob.
// An empty slot resolves to KindNone, not an error.
func Resolve(ctx context.Context, ch Channels, urls URLResolver) (Resolved, error) {
	if url := ch.ExternalURL(); url != "" {
		return Resolved{Kind: KindExternal, URL: url, MimeType: ch.MimeType(), IsExternal: true}, nil
	}

	if handle := ch.FileHandle(); handle != "" {
		if urls == nil {
			return Resolved{}, apperrors.ErrStorageUnavailable(errors.New("no storage backend configured"))
		}
		url, err := urls.GetURL(ctx, handle)
		if err != nil {
			return Resolved{}, apperrors.ErrStorageUnavailable(err)
		}
		return Resolved{
			Kind:     KindFile,
			URL:      url,
			Handle:   handle,
			MimeType: ch.MimeType(),
			Filename: ch.FileName(),
		}, nil
	}

	if data := ch.Blob(); len(data) > 0 {
		mime := ch.MimeType()
		if mime == "" {
			mime = DefaultMime
		}
		return Resolved{Kind: KindBlob, Data: data, MimeType: mime, Filename: ch.FileName()}, nil
	}

	return Resolved{Kind: KindNone}, nil
}

// IsNone reports an empty slot
func (r Resolved) IsNone() bool {
	return r.Kind == KindNone
}

// PublicURL is the URL a serializer emits. Blobs have no URL of their own and
// are served by the streaming endpoint at streamPath.
func (r Resolved) PublicURL(streamPath string) string {
	switch r.Kind {
	case KindExternal, KindFile:
		return r.URL
	case KindBlob:
		return streamPath
	default:
		return ""
	}
}
