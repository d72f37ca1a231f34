// Package fsfile provides a disk storage backend that keeps one file per
// storage path under a root directory. The file holds the full serialized
// collection; every write replaces it completely.
//
// The encoding is pluggable: the same backend is registered as "jsonfile",
// "cborfile" and "yamlfile".
package fsfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio"

	"github.com/sonicjhon1/lupabase/storage"
)

const (
	defaultFileMode = os.FileMode(0o644)
	defaultDirMode  = os.FileMode(0o755)
)

// FSFile database storage.
type FSFile struct {
	name     string
	basePath string
	codec    storage.Codec
}

func init() {
	_ = storage.Register("jsonfile", func(name, location string) (storage.Interface, error) {
		return New(name, location, storage.JSON)
	})
	_ = storage.Register("cborfile", func(name, location string) (storage.Interface, error) {
		return New(name, location, storage.CBOR)
	})
	_ = storage.Register("yamlfile", func(name, location string) (storage.Interface, error) {
		return New(name, location, storage.YAML)
	})
}

// New returns a file-per-path backend rooted at location, creating the root
// directory if it does not exist.
func New(name, location string, codec storage.Codec) (storage.Interface, error) {
	basePath, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("fsfile: failed to validate path %s: %s", location, err)
	}

	file, err := os.Stat(basePath)
	switch {
	case err == nil:
		if !file.IsDir() {
			return nil, fmt.Errorf("fsfile: provided database path (%s) is a file", basePath)
		}
	case os.IsNotExist(err):
		err = os.MkdirAll(basePath, defaultDirMode)
		if err != nil {
			return nil, fmt.Errorf("fsfile: failed to create directory %s: %s", basePath, err)
		}
	default:
		return nil, fmt.Errorf("fsfile: failed to stat path %s: %s", basePath, err)
	}

	return &FSFile{
		name:     name,
		basePath: basePath,
		codec:    codec,
	}, nil
}

// Name returns the backend name.
func (fsf *FSFile) Name() string {
	return fsf.name
}

// Codec returns the encoding files are written in.
func (fsf *FSFile) Codec() storage.Codec {
	return fsf.codec
}

func (fsf *FSFile) buildFilePath(path string) (string, error) {
	if len(path) < 1 {
		return "", fmt.Errorf("%w: path too short: %s", storage.ErrInvalidPath, path)
	}
	// Join also calls Clean()
	dstPath := filepath.Join(fsf.basePath, path+"."+fsf.codec.Extension())
	if !strings.HasPrefix(dstPath, fsf.basePath) {
		return "", fmt.Errorf("%w: integrity check failed, compiled path is %s", storage.ErrInvalidPath, dstPath)
	}
	return dstPath, nil
}

// Exists reports whether path has a file.
func (fsf *FSFile) Exists(path string) (bool, error) {
	dstPath, err := fsf.buildFilePath(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(dstPath)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("%w: failed to stat %s: %s", storage.ErrIO, dstPath, err)
	}
}

// Get returns the serialized value stored in path's file.
func (fsf *FSFile) Get(path string) ([]byte, error) {
	dstPath, err := fsf.buildFilePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(dstPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to read %s: %s", storage.ErrIO, dstPath, err)
	}
	return data, nil
}

// Put replaces path's file with the serialized value, via an atomic rename.
func (fsf *FSFile) Put(path string, data []byte) error {
	dstPath, err := fsf.buildFilePath(path)
	if err != nil {
		return err
	}

	err = renameio.WriteFile(dstPath, data, defaultFileMode)
	if err != nil {
		// create dir and try again
		err = os.MkdirAll(filepath.Dir(dstPath), defaultDirMode)
		if err != nil {
			return fmt.Errorf("%w: failed to create directory %s: %s", storage.ErrIO, filepath.Dir(dstPath), err)
		}
		err = renameio.WriteFile(dstPath, data, defaultFileMode)
		if err != nil {
			return fmt.Errorf("%w: could not write file %s: %s", storage.ErrIO, dstPath, err)
		}
	}

	return nil
}

// Backup copies path's current file to a timestamped .bak file next to it
// and returns the backup location.
func (fsf *FSFile) Backup(path, reason string) (string, error) {
	dstPath, err := fsf.buildFilePath(path)
	if err != nil {
		return "", err
	}

	backupPath := fmt.Sprintf("%s.%d-%s.bak", dstPath, time.Now().Unix(), reason)
	err = copyFile(dstPath, backupPath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to back up %s to %s: %s", storage.ErrIO, dstPath, backupPath, err)
	}
	return backupPath, nil
}

// Close is a no-op, the backend holds no persistent handles.
func (fsf *FSFile) Close() error {
	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFileMode)
	if err != nil {
		return err
	}

	_, err = io.Copy(dstFile, srcFile)
	if err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}
