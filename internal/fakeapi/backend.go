// Package fakeapi answers the logger API from run files on local disk so the
// UI can be developed without a controller attached.
package fakeapi

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/imishinist/logger-dev/internal/apierr"
	"github.com/imishinist/logger-dev/internal/logstore"
	"github.com/imishinist/logger-dev/internal/models"
	"github.com/imishinist/logger-dev/internal/parser"
	"github.com/imishinist/logger-dev/internal/respond"
)

type Backend struct {
	store  *logstore.Store
	prefix string
	logger *slog.Logger
}

// New returns a backend serving requests whose path starts with prefix.
func New(store *logstore.Store, prefix string, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{store: store, prefix: prefix, logger: logger}
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	endpoint := ParseEndpoint(strings.TrimPrefix(r.URL.Path, b.prefix))
	values := r.URL.Query()
	query := models.Query{
		OpMode: values.Get("opMode"),
		Run:    values.Get("run"),
		Suffix: values.Get("suffix"),
		Base:   values.Get("base"),
	}

	payload, err := b.Handle(endpoint, query)
	if err != nil {
		b.logger.Warn("fake api request failed",
			"endpoint", endpoint.String(),
			"run", query.Run,
			"error", err)
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, payload)
}

// Handle runs one API operation and returns its JSON-serializable result.
func (b *Backend) Handle(endpoint Endpoint, q models.Query) (any, error) {
	switch endpoint {
	case EndpointOpModes:
		return models.OpModesResponse{OpModes: []string{models.OpModeDevTest}}, nil
	case EndpointRuns:
		return b.runs(q)
	case EndpointRun:
		return b.runInfo(q)
	case EndpointData:
		return b.data(q)
	case EndpointFS:
		return b.fileTree(q)
	case EndpointRename:
		return b.rename(q)
	case EndpointDelete:
		return b.remove(q)
	default:
		return nil, fmt.Errorf("unknown endpoint: %w", apierr.ErrNotFound)
	}
}

func (b *Backend) runs(q models.Query) (any, error) {
	runs, err := b.store.ListRuns(q.OpMode)
	if err != nil {
		return nil, err
	}
	return models.RunsResponse{OpMode: models.OpModeDevTest, Runs: runs}, nil
}

func (b *Backend) runInfo(q models.Query) (any, error) {
	path, err := b.store.ResolveRunFile(q.OpMode, q.Run)
	if err != nil {
		return nil, err
	}

	resp := models.RunInfoResponse{OpMode: models.OpModeDevTest, Run: q.Run}
	info, err := os.Stat(path)
	switch {
	case err == nil:
		resp.Exists = true
		resp.Bytes = info.Size()
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to stat run: %w", err)
	}
	return resp, nil
}

func (b *Backend) data(q models.Query) (any, error) {
	path, err := b.store.ResolveRunFile(q.OpMode, q.Run)
	if err != nil {
		return nil, err
	}
	return parser.ParseRunFile(path)
}

func (b *Backend) fileTree(q models.Query) (any, error) {
	metas, err := b.store.ListRunMeta(q.OpMode)
	if err != nil {
		return nil, err
	}
	return models.FSResponse{
		OpModes: []models.OpModeRuns{{Name: models.OpModeDevTest, Runs: metas}},
	}, nil
}

func (b *Backend) rename(q models.Query) (any, error) {
	renamed, err := b.store.Rename(q.OpMode, q.Run, q.Suffix, q.Base)
	if err != nil {
		return nil, err
	}
	if renamed != q.Run {
		b.logger.Info("run renamed", "from", q.Run, "to", renamed)
	}
	return models.MutationResponse{OK: true, Run: renamed}, nil
}

func (b *Backend) remove(q models.Query) (any, error) {
	if err := b.store.Delete(q.OpMode, q.Run); err != nil {
		return nil, err
	}
	if q.Run == "" {
		b.logger.Warn("deleted all runs", "dir", b.store.Dir())
		return models.MutationResponse{OK: true, OpMode: models.OpModeDevTest}, nil
	}
	b.logger.Info("run deleted", "run", q.Run)
	return models.MutationResponse{OK: true, Run: q.Run}, nil
}
