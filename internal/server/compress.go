package server

import (
	"net/http"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// zstdResponseWriter decides on the first header write whether the body is
// encoded. Bodyless responses and bodies the handler already encoded pass
// through untouched.
type zstdResponseWriter struct {
	http.ResponseWriter
	head        bool
	wroteHeader bool
	encoder     *zstd.Encoder
}

func (w *zstdResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	if !w.head && bodyAllowed(status) && w.Header().Get("Content-Encoding") == "" {
		if encoder, err := zstd.NewWriter(w.ResponseWriter); err == nil {
			w.encoder = encoder
			w.Header().Set("Content-Encoding", "zstd")
			w.Header().Del("Content-Length")
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *zstdResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.encoder == nil {
		return w.ResponseWriter.Write(b)
	}
	return w.encoder.Write(b)
}

func (w *zstdResponseWriter) close() error {
	if w.encoder == nil {
		return nil
	}
	return w.encoder.Close()
}

// bodyAllowed reports whether a response with status may carry a body.
func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	default:
		return true
	}
}

// acceptsZstd reports whether the Accept-Encoding header lists zstd.
func acceptsZstd(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		coding, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(coding, "zstd") {
			return true
		}
	}
	return false
}

// ZstdMiddleware compresses responses for clients that accept zstd. Responses
// already carrying a Content-Encoding, such as the gzip metrics exposition, are
// left alone.
func ZstdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")

		// Only compress if client explicitly accepts zstd
		if !acceptsZstd(r) {
			next.ServeHTTP(w, r)
			return
		}

		zw := &zstdResponseWriter{
			ResponseWriter: w,
			head:           r.Method == http.MethodHead,
		}
		defer func() { _ = zw.close() }()

		next.ServeHTTP(zw, r)
	})
}
