// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ErrInvalidGCSLocation is returned for gs:// locations without bucket or object.
var ErrInvalidGCSLocation = errors.New("invalid gs:// location")

// GCSSource reads datasets from Google Cloud Storage. The client is created
// on first use, so configurations that never touch gs:// need no credentials.
type GCSSource struct {
	opts []option.ClientOption

	mu     sync.Mutex
	client *storage.Client
}

// NewGCSSource creates a GCS source. anonymous disables credential lookup
// for public buckets.
func NewGCSSource(anonymous bool) *GCSSource {
	var opts []option.ClientOption
	if anonymous {
		opts = append(opts, option.WithoutAuthentication())
	}
	return &GCSSource{opts: opts}
}

// Kind implements Source.
func (g *GCSSource) Kind() string { return KindGCS }

// Open implements Source.
func (g *GCSSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	obj, err := g.object(ctx, location)
	if err != nil {
		return nil, err
	}
	r, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs open: %w", err)
	}
	return r, nil
}

// Stat implements Source.
func (g *GCSSource) Stat(ctx context.Context, location string) error {
	obj, err := g.object(ctx, location)
	if err != nil {
		return err
	}
	if _, err := obj.Attrs(ctx); err != nil {
		return fmt.Errorf("gcs stat: %w", err)
	}
	return nil
}

// Close releases the client, if one was created.
func (g *GCSSource) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}

func (g *GCSSource) object(ctx context.Context, location string) (*storage.ObjectHandle, error) {
	bucket, object, err := ParseGCSLocation(location)
	if err != nil {
		return nil, err
	}
	client, err := g.getClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.Bucket(bucket).Object(object), nil
}

func (g *GCSSource) getClient(ctx context.Context) (*storage.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	// The client outlives the request that created it.
	client, err := storage.NewClient(context.WithoutCancel(ctx), g.opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	g.client = client
	return client, nil
}

// ParseGCSLocation splits gs://bucket/path/to/object.
func ParseGCSLocation(location string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(location, "gs://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidGCSLocation, location)
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidGCSLocation, location)
	}
	return bucket, object, nil
}
