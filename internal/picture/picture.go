// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

// Package picture stores uploaded profile pictures on disk.
//
// Pictures are opaque byte blobs. The store assigns each upload a random
// hexadecimal name so user-supplied filenames never reach the filesystem,
// and bounds the accepted size. Decoding or resizing image data is left to
// external tooling.
package picture

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
)

const (
	// Default is the filename served for users without an uploaded picture.
	Default = "default.jpg"

	// MaxBytes bounds the size of an accepted upload.
	MaxBytes = 2 << 20 // 2 MiB

	// nameBytes is the number of random bytes in a generated filename.
	nameBytes = 8
)

// ErrTooLarge is returned when an upload exceeds MaxBytes.
var ErrTooLarge = fmt.Errorf("picture exceeds %d bytes", MaxBytes)

// ErrBadExtension is returned for extensions the store does not accept.
var ErrBadExtension = fmt.Errorf("unsupported picture extension")

// allowedExts are the extensions the store accepts, lowercased with dot.
var allowedExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Store writes uploaded pictures into a single directory.
type Store struct {
	dir string
}

// NewStore creates a picture store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, oops.Code("PICTURE_DIR_EMPTY").Errorf("pictures directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, oops.Code("PICTURE_DIR_CREATE_FAILED").
			With("dir", dir).
			Wrap(err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Save stores the picture bytes under a fresh random name and returns the
// generated filename. The original filename only contributes its extension.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExts[ext]; !ok {
		return "", oops.Code("PICTURE_BAD_EXTENSION").
			With("extension", ext).
			Wrap(ErrBadExtension)
	}

	buf := make([]byte, nameBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", oops.Code("PICTURE_NAME_FAILED").Wrap(err)
	}
	name := hex.EncodeToString(buf) + ext

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", oops.Code("PICTURE_CREATE_FAILED").
			With("filename", name).
			Wrap(err)
	}

	// Read one byte past the limit to distinguish exactly-at-limit uploads.
	n, err := io.Copy(f, io.LimitReader(r, MaxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		if err == ErrTooLarge {
			return "", oops.Code("PICTURE_TOO_LARGE").
				With("limit_bytes", MaxBytes).
				Wrap(ErrTooLarge)
		}
		return "", oops.Code("PICTURE_WRITE_FAILED").
			With("filename", name).
			Wrap(err)
	}

	return name, nil
}

// Remove deletes a stored picture. Removing the default picture or an
// already-absent file is not an error.
func (s *Store) Remove(name string) error {
	if name == "" || name == Default {
		return nil
	}
	// Reject anything that is not a bare filename.
	if name != filepath.Base(name) {
		return oops.Code("PICTURE_BAD_NAME").Errorf("invalid picture name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return oops.Code("PICTURE_REMOVE_FAILED").
			With("filename", name).
			Wrap(err)
	}
	return nil
}
