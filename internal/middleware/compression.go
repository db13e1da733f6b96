// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package middleware

import (
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// compressibleTypes are the response types worth gzipping. PDF output is
// already deflated by the renderer.
var compressibleTypes = []string{"application/json", "application/geo+json", "text/plain"}

var gzipOnly = chimw.Compress(5, compressibleTypes...)

// acceptsGzip reports whether the Accept-Encoding header lists gzip with a
// non-zero quality.
func acceptsGzip(header string) bool {
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "gzip") {
			continue
		}
		q := strings.ReplaceAll(params, " ", "")
		return q != "q=0" && q != "q=0.0" && q != "q=0.00" && q != "q=0.000"
	}
	return false
}

// Compression gzips JSON responses for clients that accept gzip. chi's
// compressor does the encoding; requests are narrowed to gzip first since
// it ignores q-values and would otherwise pick deflate.
func Compression(next http.Handler) http.Handler {
	compressed := gzipOnly(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
			w.Header().Add("Vary", "Accept-Encoding")
			next.ServeHTTP(w, r)
			return
		}
		r = r.Clone(r.Context())
		r.Header.Set("Accept-Encoding", "gzip")
		compressed.ServeHTTP(w, r)
	})
}
