package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/songripper/internal/io"
	"github.com/handiism/songripper/internal/model"
)

// ErrOutsideStaging is returned for a selected path that does not sit at
// staging/<artist>/<album>/<file>.
var ErrOutsideStaging = errors.New("path is not a staged track")

// DuplicatePrompt describes a staged file whose name resembles files already
// in its library album.
type DuplicatePrompt struct {
	Candidate string
	Matches   []string
}

// ConfirmFunc decides whether a staged file replaces its look-alikes.
// Returning false leaves both the staged file and the library untouched.
type ConfirmFunc func(DuplicatePrompt) bool

// CheckReport lists what ApproveWithChecks did. Paths are the staged paths.
type CheckReport struct {
	Approved []string
	Skipped  []string
}

// Approver promotes staged tracks into the library.
type Approver struct {
	staging string
	library string
}

// NewApprover returns an Approver moving from stagingRoot into libraryRoot.
func NewApprover(stagingRoot, libraryRoot string) *Approver {
	return &Approver{staging: stagingRoot, library: libraryRoot}
}

// ApproveAll moves the whole staging tree into the library.
//
// An artist missing from the library is moved as one directory, and so is an
// album missing from an existing library artist. An album present on both
// sides is merged file by file. A staged file whose name is taken in the
// library stays in staging and is reported in the joined error. It returns
// false when nothing was staged.
func (a *Approver) ApproveAll() (bool, error) {
	if !ioutils.HasEntries(a.staging) {
		return false, nil
	}
	artists, err := os.ReadDir(a.staging)
	if err != nil {
		return false, fmt.Errorf("read staging: %w", err)
	}

	var errs []error
	for _, artist := range artists {
		if !artist.IsDir() {
			continue
		}
		src := filepath.Join(a.staging, artist.Name())
		dst := filepath.Join(a.library, artist.Name())
		if !ioutils.Exists(dst) {
			if err := ioutils.MoveDir(src, dst); err != nil {
				errs = append(errs, fmt.Errorf("approve %s: %w", src, err))
			}
			continue
		}
		errs = append(errs, a.mergeArtist(src, dst)...)
		ioutils.RemoveIfEmpty(src)
	}
	ioutils.RemoveIfEmpty(a.staging)
	return true, errors.Join(errs...)
}

func (a *Approver) mergeArtist(src, dst string) []error {
	albums, err := os.ReadDir(src)
	if err != nil {
		return []error{fmt.Errorf("read %s: %w", src, err)}
	}

	var errs []error
	for _, album := range albums {
		if !album.IsDir() {
			continue
		}
		albumSrc := filepath.Join(src, album.Name())
		albumDst := filepath.Join(dst, album.Name())
		if !ioutils.Exists(albumDst) {
			if err := ioutils.MoveDir(albumSrc, albumDst); err != nil {
				errs = append(errs, fmt.Errorf("approve %s: %w", albumSrc, err))
			}
			continue
		}

		files, err := os.ReadDir(albumSrc)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", albumSrc, err))
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			from := filepath.Join(albumSrc, f.Name())
			if err := ioutils.MoveFile(from, filepath.Join(albumDst, f.Name()), false); err != nil {
				errs = append(errs, fmt.Errorf("approve %s: %w", from, err))
			}
		}
		ioutils.RemoveIfEmpty(albumSrc)
	}
	return errs
}

// ApproveSelected moves the given staged files into
// library/<artist>/<album>/, replacing a same-named library file. Missing
// paths are skipped. It returns how many files were moved.
func (a *Approver) ApproveSelected(paths []string) (int, error) {
	if len(paths) == 0 || !ioutils.HasEntries(a.staging) {
		return 0, nil
	}

	var (
		moved int
		errs  []error
	)
	for _, p := range paths {
		if !ioutils.Exists(p) {
			continue
		}
		dst, err := a.destination(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := ioutils.MoveFile(p, dst, true); err != nil {
			errs = append(errs, fmt.Errorf("approve %s: %w", p, err))
			continue
		}
		moved++
		ioutils.PruneEmptyDirs(filepath.Dir(p), a.staging)
	}
	ioutils.RemoveIfEmpty(a.staging)
	return moved, errors.Join(errs...)
}

// ApproveWithChecks moves every staged track into the library, asking
// confirm about each one that resembles tracks already in its library album.
// A confirmed track replaces a same-named library file; a declined one stays
// in staging.
func (a *Approver) ApproveWithChecks(confirm ConfirmFunc) (CheckReport, error) {
	var report CheckReport
	if !ioutils.HasEntries(a.staging) {
		return report, nil
	}

	var errs []error
	err := a.walkStaged(func(path, destDir string) {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		matches, err := FindSimilar(destDir, stem)
		if err != nil {
			errs = append(errs, err)
			return
		}
		overwrite := false
		if len(matches) > 0 {
			if confirm == nil || !confirm(DuplicatePrompt{Candidate: path, Matches: matches}) {
				report.Skipped = append(report.Skipped, path)
				return
			}
			overwrite = true
		}
		if err := ioutils.MoveFile(path, filepath.Join(destDir, filepath.Base(path)), overwrite); err != nil {
			errs = append(errs, fmt.Errorf("approve %s: %w", path, err))
			return
		}
		report.Approved = append(report.Approved, path)
	})
	if err != nil {
		errs = append(errs, err)
	}

	a.pruneStaging()
	return report, errors.Join(errs...)
}

// FindSimilarExisting returns the library tracks that resemble the staged
// track at path, looking in the album directory it would be approved into.
func (a *Approver) FindSimilarExisting(path string) ([]string, error) {
	dst, err := a.destination(path)
	if err != nil {
		return nil, err
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return FindSimilar(filepath.Dir(dst), stem)
}

// destination maps staging/<artist>/<album>/<file> to its library path.
func (a *Approver) destination(path string) (string, error) {
	rel, err := filepath.Rel(a.staging, path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideStaging)
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 3 || parts[0] == ".." {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideStaging)
	}
	return filepath.Join(a.library, parts[0], parts[1], parts[2]), nil
}

// walkStaged calls fn for every staged audio file with the library album
// directory it belongs in. Listings are taken up front, so fn may move files.
func (a *Approver) walkStaged(fn func(path, destDir string)) error {
	artists, err := os.ReadDir(a.staging)
	if err != nil {
		return fmt.Errorf("read staging: %w", err)
	}
	for _, artist := range artists {
		if !artist.IsDir() {
			continue
		}
		albums, err := os.ReadDir(filepath.Join(a.staging, artist.Name()))
		if err != nil {
			return err
		}
		for _, album := range albums {
			if !album.IsDir() {
				continue
			}
			albumDir := filepath.Join(a.staging, artist.Name(), album.Name())
			files, err := os.ReadDir(albumDir)
			if err != nil {
				return err
			}
			destDir := model.Album{Artist: artist.Name(), Title: album.Name()}.Dir(a.library)
			for _, f := range files {
				if f.Type().IsRegular() && model.IsAudioFile(f.Name()) {
					fn(filepath.Join(albumDir, f.Name()), destDir)
				}
			}
		}
	}
	return nil
}

// pruneStaging removes emptied album and artist directories, then the
// staging root itself when nothing is left.
func (a *Approver) pruneStaging() {
	artists, err := os.ReadDir(a.staging)
	if err != nil {
		return
	}
	for _, artist := range artists {
		if !artist.IsDir() {
			continue
		}
		artistDir := filepath.Join(a.staging, artist.Name())
		albums, err := os.ReadDir(artistDir)
		if err != nil {
			continue
		}
		for _, album := range albums {
			if album.IsDir() {
				ioutils.RemoveIfEmpty(filepath.Join(artistDir, album.Name()))
			}
		}
		ioutils.RemoveIfEmpty(artistDir)
	}
	ioutils.RemoveIfEmpty(a.staging)
}
