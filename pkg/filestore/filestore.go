// Package filestore is the file storage adapter. The Local driver keeps
// uploads under a configured root with randomized names, validates size and
// extension before anything touches disk, and refuses paths that escape the
// root.
package filestore

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/elemental-io/elemental/pkg/apperr"
)

// Store is the driver contract. Paths passed in and returned are always
// relative to the driver's root.
type Store interface {
	// Upload persists content under a generated name inside dir and
	// returns the relative path of the stored file.
	Upload(ctx context.Context, dir, filename string, content []byte) (string, error)
	// Update atomically replaces an existing file's content.
	Update(ctx context.Context, relPath, filename string, content []byte) error
	// Read returns a stored file's content.
	Read(ctx context.Context, relPath string) ([]byte, error)
	// Delete removes a file. A missing file is not an error.
	Delete(ctx context.Context, relPath string) error
	// Exists reports whether relPath names a regular file.
	Exists(ctx context.Context, relPath string) (bool, error)
	// PublicURL resolves the externally visible URL of a stored file.
	PublicURL(ctx context.Context, relPath string) (string, error)
}

// normalize cleans a caller-supplied relative path and rejects anything
// that would escape the storage root.
func normalize(p string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", apperr.Validation("File path escapes the storage root.")
	}
	return cleaned, nil
}

func validateFilename(filename string, allowedExtensions []string) (string, error) {
	if strings.ContainsAny(filename, `/\`) {
		return "", apperr.Validation("File name must not contain path separators.")
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		return "", apperr.Validation("File has no extension.")
	}
	base := strings.TrimSuffix(filename, ext)
	if path.Ext(base) != "" {
		return "", apperr.Validation("Multiple extensions are not allowed.")
	}

	if len(allowedExtensions) == 0 {
		return ext, nil
	}
	trimmed := strings.TrimPrefix(ext, ".")
	for _, allowed := range allowedExtensions {
		if trimmed == strings.ToLower(strings.TrimPrefix(allowed, ".")) {
			return ext, nil
		}
	}
	return "", apperr.Validation(
		fmt.Sprintf("Extension '%s' is not allowed. Allowed: %s", ext, strings.Join(allowedExtensions, ", ")))
}

func validateSize(size int, maxSize int64) error {
	if size <= 0 {
		return apperr.Validation("File is empty.")
	}
	if maxSize > 0 && int64(size) > maxSize {
		return apperr.Validation(fmt.Sprintf("File exceeds maximum allowed size of %d bytes.", maxSize))
	}
	return nil
}
