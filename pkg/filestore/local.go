package filestore

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/elemental-io/elemental/pkg/apperr"
	"github.com/elemental-io/elemental/pkg/config"
	log "github.com/elemental-io/elemental/pkg/logger"
)

// Local stores files on the local filesystem under cfg.Path.
type Local struct {
	cfg config.FileStoreConfig
}

func NewLocal(cfg config.FileStoreConfig) *Local {
	return &Local{cfg: cfg}
}

var _ Store = (*Local)(nil)

func (l *Local) Upload(ctx context.Context, dir, filename string, content []byte) (string, error) {
	ext, err := validateFilename(filename, l.cfg.AllowedExtensions)
	if err != nil {
		return "", err
	}
	if err := validateSize(len(content), l.cfg.MaxSizeBytes); err != nil {
		return "", err
	}

	relDir, err := normalize(dir)
	if err != nil {
		return "", err
	}

	absDir := filepath.Join(l.cfg.Path, filepath.FromSlash(relDir))
	if err := os.MkdirAll(absDir, 0755); err != nil {
		log.WithError(err).WithField("dir", absDir).Error("create storage dir failed")
		return "", accessError(relDir)
	}

	id := uuid.New()
	name := hex.EncodeToString(id[:]) + ext
	if err := os.WriteFile(filepath.Join(absDir, name), content, 0644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", accessError(relDir)
		}
		log.WithError(err).WithField("file", filename).Error("file write failed")
		return "", apperr.External("Failed to store file.", nil)
	}

	if relDir == "." || relDir == "" {
		return name, nil
	}
	return relDir + "/" + name, nil
}

func (l *Local) Update(ctx context.Context, relPath, filename string, content []byte) error {
	rel, err := normalize(relPath)
	if err != nil {
		return err
	}
	abs := filepath.Join(l.cfg.Path, filepath.FromSlash(rel))

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.NotFound("File '" + rel + "' does not exist.")
		}
		return accessError(rel)
	}
	if !info.Mode().IsRegular() {
		return apperr.Validation("Path '" + rel + "' is not a file, cannot update.")
	}

	if _, err := validateFilename(filename, l.cfg.AllowedExtensions); err != nil {
		return err
	}
	if err := validateSize(len(content), l.cfg.MaxSizeBytes); err != nil {
		return err
	}

	tmp := abs + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		log.WithError(err).WithField("file", rel).Error("temp file write failed")
		return apperr.External("Failed to update file.", nil)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		log.WithError(err).WithField("file", rel).Error("file replace failed")
		return apperr.External("Failed to update file.", nil)
	}
	return nil
}

func (l *Local) Read(ctx context.Context, relPath string) ([]byte, error) {
	rel, err := normalize(relPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(l.cfg.Path, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFound("File '" + rel + "' does not exist.")
		}
		return nil, accessError(rel)
	}
	return data, nil
}

func (l *Local) Delete(ctx context.Context, relPath string) error {
	// callers sometimes hand back full public URLs
	if l.cfg.BaseURL != "" {
		relPath = strings.TrimPrefix(relPath, l.cfg.BaseURL)
	}
	rel, err := normalize(relPath)
	if err != nil {
		return err
	}
	abs := filepath.Join(l.cfg.Path, filepath.FromSlash(rel))

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return accessError(rel)
	}
	if !info.Mode().IsRegular() {
		return apperr.Validation("Path '" + rel + "' is not a file, cannot delete.")
	}

	if err := os.Remove(abs); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return accessError(rel)
		}
		log.WithError(err).WithField("file", rel).Error("file delete failed")
		return apperr.External("Failed to delete file.", nil)
	}
	return nil
}

func (l *Local) Exists(ctx context.Context, relPath string) (bool, error) {
	rel, err := normalize(relPath)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(filepath.Join(l.cfg.Path, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, accessError(rel)
	}
	return info.Mode().IsRegular(), nil
}

func (l *Local) PublicURL(ctx context.Context, relPath string) (string, error) {
	rel, err := normalize(relPath)
	if err != nil {
		return "", err
	}
	ok, err := l.Exists(ctx, rel)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("File '" + rel + "' does not exist.")
	}
	return strings.TrimSuffix(l.cfg.BaseURL, "/") + "/" + rel, nil
}

func accessError(relPath string) error {
	return apperr.External("Storage access failed for '"+relPath+"'.", nil)
}
