// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package loader

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// Source kinds, used as metric labels.
const (
	KindFile = "file"
	KindHTTP = "http"
	KindGCS  = "gcs"
)

// Source opens dataset locations of one kind.
type Source interface {
	// Open returns a reader for the raw bytes at location.
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	// Stat checks that location exists and is readable without reading it.
	Stat(ctx context.Context, location string) error
	// Kind names the source for metrics.
	Kind() string
}

// KindOf returns the source kind a location resolves to.
func KindOf(location string) string {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return KindHTTP
	case strings.HasPrefix(location, "gs://"):
		return KindGCS
	default:
		return KindFile
	}
}

// FileSource reads datasets from the local filesystem.
type FileSource struct{}

// Kind implements Source.
func (FileSource) Kind() string { return KindFile }

// Open implements Source.
func (FileSource) Open(_ context.Context, location string) (io.ReadCloser, error) {
	return os.Open(filePath(location))
}

// Stat implements Source.
func (FileSource) Stat(_ context.Context, location string) error {
	info, err := os.Stat(filePath(location))
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", location)
	}
	return nil
}

// filePath strips a file:// prefix.
func filePath(location string) string {
	if strings.HasPrefix(location, "file://") {
		if u, err := url.Parse(location); err == nil {
			return u.Path
		}
	}
	return location
}

// gzipReadCloser closes both the gzip stream and the underlying reader.
type gzipReadCloser struct {
	*gzip.Reader
	under io.Closer
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.Reader.Close()
	if err := g.under.Close(); err != nil {
		return err
	}
	return gzErr
}

// maybeDecompress wraps rc in a gzip reader when location ends in .gz.
func maybeDecompress(location string, rc io.ReadCloser) (io.ReadCloser, error) {
	if !strings.HasSuffix(strings.ToLower(stripQuery(location)), ".gz") {
		return rc, nil
	}
	zr, err := gzip.NewReader(rc)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return &gzipReadCloser{Reader: zr, under: rc}, nil
}

func stripQuery(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		return location[:i]
	}
	return location
}

// countingReader counts bytes read for the loader metrics.
type countingReader struct {
	io.ReadCloser
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.ReadCloser.Read(p)
	c.n += int64(n)
	return n, err
}
