// Package blob reads and writes whole objects addressed by URI: local paths,
// file:// URIs and s3://bucket/key.
package blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrNotFound   = errors.New("object not found")
	ErrInvalidURI = errors.New("invalid object uri")
)

// Store reads and writes complete objects.
type Store interface {
	Read(ctx context.Context, uri string) ([]byte, error)
	Write(ctx context.Context, uri string, data []byte) error
}

// IsS3 reports whether uri uses the s3 scheme.
func IsS3(uri string) bool {
	return strings.HasPrefix(strings.ToLower(uri), "s3://")
}

// ParseS3URI splits s3://bucket/key into bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if !strings.EqualFold(u.Scheme, "s3") {
		return "", "", fmt.Errorf("%w: %q is not an s3 uri", ErrInvalidURI, uri)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidURI, uri)
	}
	return bucket, key, nil
}

// Router sends s3:// URIs to an S3 store and everything else to a local one.
type Router struct {
	local Store
	s3    Store
}

// NewRouter creates a Router. s3 may be nil, in which case s3:// URIs fail.
func NewRouter(local, s3 Store) *Router {
	return &Router{local: local, s3: s3}
}

func (r *Router) Read(ctx context.Context, uri string) ([]byte, error) {
	store, err := r.route(uri)
	if err != nil {
		return nil, err
	}
	return store.Read(ctx, uri)
}

func (r *Router) Write(ctx context.Context, uri string, data []byte) error {
	store, err := r.route(uri)
	if err != nil {
		return err
	}
	return store.Write(ctx, uri, data)
}

func (r *Router) route(uri string) (Store, error) {
	if IsS3(uri) {
		if r.s3 == nil {
			return nil, fmt.Errorf("%w: no s3 store configured for %q", ErrInvalidURI, uri)
		}
		return r.s3, nil
	}
	return r.local, nil
}
