package controller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imishinist/logger-dev/internal/apierr"
	"github.com/imishinist/logger-dev/internal/config"
)

func newTestClient(t *testing.T, robot string) *Client {
	t.Helper()
	cfg := &config.Config{
		Root:      config.DefaultRoot,
		Host:      config.DefaultHost,
		Port:      config.DefaultPort,
		Robot:     robot,
		RunsDir:   config.DefaultRunsDir,
		LogLevel:  "info",
		LogFormat: "text",
	}
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestClient_FileTree(t *testing.T) {
	robot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logger/api/fs", r.URL.Path)
		_, _ = io.WriteString(w, `{"opModes":[{"name":"Auto","runs":[{"name":"0001","bytes":10,"modified":1700000000000}]}]}`)
	}))
	defer robot.Close()

	tree, err := newTestClient(t, robot.URL+"/").FileTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree.OpModes, 1)
	assert.Equal(t, "Auto", tree.OpModes[0].Name)
	require.Len(t, tree.OpModes[0].Runs, 1)
	assert.Equal(t, int64(10), tree.OpModes[0].Runs[0].Bytes)
}

func TestClient_Runs(t *testing.T) {
	robot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logger/api/runs", r.URL.Path)
		assert.Equal(t, "Auto Blue", r.URL.Query().Get("opMode"))
		_, _ = io.WriteString(w, `{"opMode":"Auto Blue","runs":["0002","0001"]}`)
	}))
	defer robot.Close()

	runs, err := newTestClient(t, robot.URL).Runs(context.Background(), "Auto Blue")
	require.NoError(t, err)
	assert.Equal(t, []string{"0002", "0001"}, runs.Runs)
}

func TestClient_ErrorStatus(t *testing.T) {
	robot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"error":"Missing query param: opMode"}`, http.StatusBadRequest)
	}))
	defer robot.Close()

	_, err := newTestClient(t, robot.URL).Runs(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestClient_Unreachable(t *testing.T) {
	robot := httptest.NewServer(http.NotFoundHandler())
	addr := robot.URL
	robot.Close()

	_, err := newTestClient(t, addr).FileTree(context.Background())
	assert.ErrorIs(t, err, apierr.ErrBadGateway)
}
