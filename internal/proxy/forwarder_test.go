package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsHopByHop(t *testing.T) {
	for _, h := range []string{"Connection", "KEEP-ALIVE", "Transfer-Encoding", "te", "Trailers", "Upgrade", "Proxy-Authorization", "proxy-authenticate"} {
		assert.True(t, IsHopByHop(h), h)
	}
	for _, h := range []string{"Content-Type", "Content-Length", "X-Request-Id", "Cache-Control"} {
		assert.False(t, IsHopByHop(h), h)
	}
}

func TestForwarder_RelaysResponse(t *testing.T) {
	var gotURI string
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Robot", "ftc")
		w.Header().Set("Keep-Alive", "timeout=5")
		w.Header().Set("Upgrade", "h2c")
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, `{"runs":["0001"]}`)
	}))
	defer remote.Close()

	f := New(remote.URL+"/", 0, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logger/api/runs?opMode=DEV_TEST&run=a%20b", nil)
	f.ServeHTTP(rec, req)

	assert.Equal(t, "/logger/api/runs?opMode=DEV_TEST&run=a%20b", gotURI)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, `{"runs":["0001"]}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ftc", rec.Header().Get("X-Robot"))
	assert.Empty(t, rec.Header().Get("Keep-Alive"))
	assert.Empty(t, rec.Header().Get("Upgrade"))
}

func TestForwarder_RemoteHeadersReplaceLocal(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "robot-id")
		_, _ = io.WriteString(w, "{}")
	}))
	defer remote.Close()

	fwd := New(remote.URL, 0, nil)
	req := httptest.NewRequest(http.MethodGet, "/logger/api/runs", nil)
	rec := httptest.NewRecorder()
	rec.Header().Set("X-Request-Id", "local-id")
	fwd.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"robot-id"}, rec.Header().Values("X-Request-Id"))
}

func TestForwarder_StripsTransferEncoding(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "chunk one,")
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
		_, _ = io.WriteString(w, "chunk two")
	}))
	defer remote.Close()

	f := New(remote.URL, 0, nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logger/api/data", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chunk one,chunk two", rec.Body.String())
	assert.Empty(t, rec.Header().Values("Transfer-Encoding"))
}

func TestForwarder_UnreachableRemoteIsBadGateway(t *testing.T) {
	remote := httptest.NewServer(http.NotFoundHandler())
	addr := remote.URL
	remote.Close()

	f := New(addr, time.Second, nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logger/api/opmodes", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Proxy error")
}
