// Package assets writes build artifacts under content-hashed file names so
// browsers fetch a fresh copy whenever the bytes change.
package assets

import (
	"crypto/md5" // #nosec G501 -- cache-busting only, not a security property.
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
)

// HashLength is the number of hex characters kept from the digest.
const HashLength = 8

// Asset is a written build artifact.
type Asset struct {
	Name string // file name, e.g. index-1a2b3c4d.js
	Path string // full path on disk
	Hash string
	Size int
}

// Hash returns the first HashLength lowercase hex characters of the MD5 digest of b.
func Hash(b []byte) string {
	// #nosec G401 -- collisions only cost a stale cache entry.
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])[:HashLength]
}

// HashedName returns "<base>-<hash>.<ext>".
func HashedName(base, ext string, b []byte) string {
	return base + "-" + Hash(b) + "." + strings.TrimPrefix(ext, ".")
}

// Write stores b in dir under its hashed name.
func Write(dir, base, ext string, b []byte) (Asset, error) {
	name := HashedName(base, ext, b)
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return Asset{}, errors.FileSystemError("mkdir", dir, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil { // #nosec G306 -- published web asset.
		return Asset{}, errors.FileSystemError("write", path, err)
	}
	return Asset{Name: name, Path: path, Hash: Hash(b), Size: len(b)}, nil
}

// CopyTo duplicates the asset into dir under the same name and returns the copy.
func (a Asset) CopyTo(dir string) (Asset, error) {
	dst := filepath.Join(dir, a.Name)
	if err := CopyFile(a.Path, dst); err != nil {
		return Asset{}, err
	}
	return Asset{Name: a.Name, Path: dst, Hash: a.Hash, Size: a.Size}, nil
}

// CopyFile copies a single file, creating the destination directory if needed.
func CopyFile(src, dst string) error {
	// #nosec G304 -- src is a file this build produced.
	in, err := os.Open(src)
	if err != nil {
		return errors.FileSystemError("open", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return errors.FileSystemError("mkdir", filepath.Dir(dst), err)
	}

	// #nosec G304 -- dst is under a configured output directory.
	out, err := os.Create(dst)
	if err != nil {
		return errors.FileSystemError("create", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.FileSystemError("copy", dst, err)
	}
	if err := out.Close(); err != nil {
		return errors.FileSystemError("close", dst, err)
	}
	return nil
}
