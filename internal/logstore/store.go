// Package logstore manages the flat directory of newline-delimited JSON run
// files served by the fake backend.
package logstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/imishinist/logger-dev/internal/apierr"
	"github.com/imishinist/logger-dev/internal/models"
)

// RunExt is the filename extension of run files.
const RunExt = ".jsonl"

// Store is a directory of run files named <identifier>.jsonl. It holds no
// in-process state; concurrent mutations rely on the filesystem.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// ValidateOpMode accepts the supported mode or an empty value meaning the default.
func ValidateOpMode(opMode string) error {
	if opMode == "" || opMode == models.OpModeDevTest {
		return nil
	}
	return fmt.Errorf("unknown operating mode %q: %w", opMode, apierr.ErrNotFound)
}

// runFile is a run file name and the stat of its target.
type runFile struct {
	name string
	info fs.FileInfo
}

// runFiles returns the run files in the store, sorted lexicographically.
// Symlinks are followed; an entry counts when its target is a regular file.
// A missing directory holds no runs.
func (s *Store) runFiles() ([]runFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read run directory: %w", err)
	}

	files := make([]runFile, 0, len(entries))
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), RunExt) {
			continue
		}
		info, err := os.Stat(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat run %s: %w", entry.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, runFile{name: entry.Name(), info: info})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })
	return files, nil
}

// ListRuns returns run identifiers sorted by filename.
func (s *Store) ListRuns(opMode string) ([]string, error) {
	if err := ValidateOpMode(opMode); err != nil {
		return nil, err
	}
	files, err := s.runFiles()
	if err != nil {
		return nil, err
	}

	runs := make([]string, 0, len(files))
	for _, f := range files {
		runs = append(runs, strings.TrimSuffix(f.name, RunExt))
	}
	return runs, nil
}

// ListRunMeta returns size and modification time for every run.
func (s *Store) ListRunMeta(opMode string) ([]models.RunMeta, error) {
	if err := ValidateOpMode(opMode); err != nil {
		return nil, err
	}
	files, err := s.runFiles()
	if err != nil {
		return nil, err
	}

	metas := make([]models.RunMeta, 0, len(files))
	for _, f := range files {
		metas = append(metas, models.RunMeta{
			Name:     strings.TrimSuffix(f.name, RunExt),
			Bytes:    f.info.Size(),
			Modified: f.info.ModTime().UnixMilli(),
		})
	}
	return metas, nil
}

// ResolveRunFile returns the path of run, or of the first run when run is
// empty. The returned file is not guaranteed to exist.
func (s *Store) ResolveRunFile(opMode, run string) (string, error) {
	if err := ValidateOpMode(opMode); err != nil {
		return "", err
	}
	if run == "" {
		runs, err := s.ListRuns(opMode)
		if err != nil {
			return "", err
		}
		if len(runs) == 0 {
			return "", fmt.Errorf("no runs found: %w", apierr.ErrNotFound)
		}
		run = runs[0]
	}
	if err := ValidateName(run); err != nil {
		return "", err
	}
	return s.path(run), nil
}

func (s *Store) path(run string) string {
	return filepath.Join(s.dir, run+RunExt)
}

// Rename replaces the suffix of run. The new identifier is base (or the part
// of run before its first space) followed by a space and the sanitized suffix
// when that is non-empty.
func (s *Store) Rename(opMode, run, suffix, base string) (string, error) {
	if err := ValidateOpMode(opMode); err != nil {
		return "", err
	}
	if run == "" {
		return "", fmt.Errorf("missing run: %w", apierr.ErrInvalidArgument)
	}
	src, err := s.ResolveRunFile(opMode, run)
	if err != nil {
		return "", err
	}

	baseName := strings.TrimSpace(base)
	if baseName == "" {
		baseName, _, _ = strings.Cut(run, " ")
	}
	if err := ValidateName(baseName); err != nil {
		return "", err
	}

	target := baseName
	if safe := SanitizeSuffix(suffix); safe != "" {
		target = baseName + " " + safe
	}
	if target == run {
		return run, nil
	}

	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("run %q not found: %w", run, apierr.ErrNotFound)
		}
		return "", fmt.Errorf("failed to stat run: %w", err)
	}

	dst := s.path(target)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("target %q already exists: %w", target, apierr.ErrConflict)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to stat target: %w", err)
	}

	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("failed to rename run: %w", err)
	}
	return target, nil
}

// Delete removes the file of run. An empty run removes every run file in the
// store; there is no further confirmation. Removing an absent run succeeds.
func (s *Store) Delete(opMode, run string) error {
	if err := ValidateOpMode(opMode); err != nil {
		return err
	}
	if run == "" {
		files, err := s.runFiles()
		if err != nil {
			return err
		}
		for _, f := range files {
			if err := removeIfExists(filepath.Join(s.dir, f.name)); err != nil {
				return err
			}
		}
		return nil
	}

	path, err := s.ResolveRunFile(opMode, run)
	if err != nil {
		return err
	}
	return removeIfExists(path)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", filepath.Base(path), err)
	}
	return nil
}
