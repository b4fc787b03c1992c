package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// ErrDestinationExists is returned by MoveFile when the destination is taken
// and overwriting was not requested.
var ErrDestinationExists = errors.New("destination already exists")

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The destination is synced before returning so a
// following rename commits durable content.
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	if err := destFile.Sync(); err != nil {
		return err
	}
	return destFile.Close()
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Exists reports whether path exists (file or directory).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsEmptyDir reports whether dir exists and contains no entries. Only one
// directory entry is read.
func IsEmptyDir(dir string) bool {
	f, err := os.Open(dir)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	return errors.Is(err, io.EOF)
}

// HasEntries reports whether dir exists and contains at least one entry.
func HasEntries(dir string) bool {
	f, err := os.Open(dir)
	if err != nil {
		return false
	}
	defer f.Close()

	names, _ := f.Readdirnames(1)
	return len(names) > 0
}

// MoveFile moves the regular file src to dst, creating dst's parent
// directories.
//
// The rename is the commit step: when it succeeds the file exists exactly
// once, at dst. If overwrite is false and dst already exists, the move fails
// with ErrDestinationExists and nothing is touched. With overwrite, an existing
// dst is replaced atomically by the rename.
//
// When source and destination are on different devices the content is copied
// into a hidden temporary file next to dst, renamed into place and only then
// removed from src. The temporary file is removed on every failure path.
func MoveFile(src, dst string, overwrite bool) error {
	if !overwrite && Exists(dst) {
		return fmt.Errorf("move %s: %w", dst, ErrDestinationExists)
	}
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}
	return copyAcross(src, dst)
}

// MoveDir moves the directory tree src to dst, which must not exist yet.
//
// A same-device move is a single rename. Across devices every file is moved
// with MoveFile and the emptied source directories are removed afterwards.
func MoveDir(src, dst string) error {
	if Exists(dst) {
		return fmt.Errorf("move %s: %w", dst, ErrDestinationExists)
	}
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return EnsureDir(target)
		}
		return MoveFile(path, target, false)
	})
	if err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// PruneEmptyDirs removes dir and then each of its ancestors while they are
// empty, stopping at stop. stop itself is never removed, and dirs outside of
// stop are left alone.
func PruneEmptyDirs(dir, stop string) {
	dir = filepath.Clean(dir)
	stop = filepath.Clean(stop)
	for dir != stop && isWithin(dir, stop) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

// RemoveIfEmpty removes dir when it has no entries and reports whether it did.
func RemoveIfEmpty(dir string) bool {
	if !IsEmptyDir(dir) {
		return false
	}
	return os.Remove(dir) == nil
}

func isWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel)
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && os.IsPathSeparator(rel[2])
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, syscall.EXDEV)
	}
	return errors.Is(err, syscall.EXDEV)
}

func copyAcross(src, dst string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err = CopyFile(context.Background(), src, tmpPath); err != nil {
		return fmt.Errorf("copy across devices: %w", err)
	}
	if err = os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("commit copy: %w", err)
	}
	if err = os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
