package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptsZstd(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"gzip", false},
		{"zstd", true},
		{"gzip, deflate, br, zstd", true},
		{"ZSTD;q=0.5", true},
		{"x-zstd-ish", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.Header.Set("Accept-Encoding", tt.header)
			assert.Equal(t, tt.want, acceptsZstd(r))
		})
	}
}

func serveZstd(t *testing.T, method string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/", nil)
	req.Header.Set("Accept-Encoding", "zstd, gzip")
	rec := httptest.NewRecorder()
	ZstdMiddleware(h).ServeHTTP(rec, req)
	return rec
}

func TestZstdMiddleware_EncodesBody(t *testing.T) {
	rec := serveZstd(t, http.MethodGet, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "5")
		_, _ = w.Write([]byte("hello"))
	})
	assert.Equal(t, "zstd", rec.Header().Get("Content-Encoding"))
	assert.Empty(t, rec.Header().Get("Content-Length"))

	dec, err := zstd.NewReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer dec.Close()
	plain, err := io.ReadAll(dec)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(plain))
}

func TestZstdMiddleware_PassesThroughEncodedBody(t *testing.T) {
	rec := serveZstd(t, http.MethodGet, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write([]byte{0x1f, 0x8b, 0x08})
	})
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, []byte{0x1f, 0x8b, 0x08}, rec.Body.Bytes())
}

func TestZstdMiddleware_SkipsBodylessResponses(t *testing.T) {
	rec := serveZstd(t, http.MethodGet, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Empty(t, rec.Body.Bytes())

	rec = serveZstd(t, http.MethodHead, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
	})
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Empty(t, rec.Body.Bytes())
}
