package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ioutils "github.com/handiism/songripper/internal/io"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newTrees(t *testing.T) (staging, lib string, a *Approver) {
	t.Helper()
	dir := t.TempDir()
	staging = filepath.Join(dir, "data", "staging")
	lib = filepath.Join(dir, "music")
	require.NoError(t, os.MkdirAll(lib, 0o755))
	return staging, lib, NewApprover(staging, lib)
}

func TestApproveAllNothingStaged(t *testing.T) {
	_, lib, a := newTrees(t)

	done, err := a.ApproveAll()
	require.NoError(t, err)
	assert.False(t, done)
	assert.True(t, ioutils.IsEmptyDir(lib))
}

func TestApproveAllMovesNewArtist(t *testing.T) {
	staging, lib, a := newTrees(t)
	writeFile(t, filepath.Join(staging, "Artist", "Album", "01 Song.mp3"), "new")

	done, err := a.ApproveAll()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "new", readFile(t, filepath.Join(lib, "Artist", "Album", "01 Song.mp3")))
	assert.NoDirExists(t, staging)
}

func TestApproveAllMergesExistingArtist(t *testing.T) {
	staging, lib, a := newTrees(t)
	writeFile(t, filepath.Join(lib, "Artist", "Old Album", "01 Old.mp3"), "old")
	writeFile(t, filepath.Join(lib, "Artist", "Shared", "01 Kept.mp3"), "library")

	writeFile(t, filepath.Join(staging, "Artist", "New Album", "01 New.mp3"), "new")
	writeFile(t, filepath.Join(staging, "Artist", "Shared", "02 Extra.mp3"), "extra")
	clash := writeFile(t, filepath.Join(staging, "Artist", "Shared", "01 Kept.mp3"), "staged")

	done, err := a.ApproveAll()
	assert.True(t, done)
	require.Error(t, err)
	assert.ErrorIs(t, err, ioutils.ErrDestinationExists)

	assert.Equal(t, "old", readFile(t, filepath.Join(lib, "Artist", "Old Album", "01 Old.mp3")))
	assert.Equal(t, "new", readFile(t, filepath.Join(lib, "Artist", "New Album", "01 New.mp3")))
	assert.Equal(t, "extra", readFile(t, filepath.Join(lib, "Artist", "Shared", "02 Extra.mp3")))
	assert.Equal(t, "library", readFile(t, filepath.Join(lib, "Artist", "Shared", "01 Kept.mp3")))

	// The clashing file stays staged, everything else is pruned.
	assert.Equal(t, "staged", readFile(t, clash))
	assert.NoDirExists(t, filepath.Join(staging, "Artist", "New Album"))
}

func TestApproveSelected(t *testing.T) {
	staging, lib, a := newTrees(t)
	picked := writeFile(t, filepath.Join(staging, "Artist", "Album", "01 A.mp3"), "a")
	other := writeFile(t, filepath.Join(staging, "Other", "Album", "01 B.mp3"), "b")
	writeFile(t, filepath.Join(lib, "Artist", "Album", "01 A.mp3"), "old")

	n, err := a.ApproveSelected([]string{picked, filepath.Join(staging, "gone.mp3")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "a", readFile(t, filepath.Join(lib, "Artist", "Album", "01 A.mp3")))
	assert.NoDirExists(t, filepath.Join(staging, "Artist"))
	assert.FileExists(t, other)

	n, err = a.ApproveSelected([]string{other})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoDirExists(t, staging)
}

func TestApproveSelectedEmptyAndOutside(t *testing.T) {
	staging, _, a := newTrees(t)
	writeFile(t, filepath.Join(staging, "Artist", "Album", "01 A.mp3"), "a")

	n, err := a.ApproveSelected(nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	outside := writeFile(t, filepath.Join(t.TempDir(), "x.mp3"), "x")
	n, err = a.ApproveSelected([]string{outside})
	assert.ErrorIs(t, err, ErrOutsideStaging)
	assert.Zero(t, n)
	assert.FileExists(t, outside)
}

func TestApproveWithChecks(t *testing.T) {
	staging, lib, a := newTrees(t)
	writeFile(t, filepath.Join(lib, "Artist", "Album", "01 One More Time.mp3"), "old one")
	writeFile(t, filepath.Join(lib, "Artist", "Album", "02 Aerodynamic.mp3"), "old two")

	replace := writeFile(t, filepath.Join(staging, "Artist", "Album", "01 One More Time.mp3"), "new one")
	decline := writeFile(t, filepath.Join(staging, "Artist", "Album", "02 Aerodynamic (Live).mp3"), "live")
	fresh := writeFile(t, filepath.Join(staging, "Artist", "Album", "09 Voyager.mp3"), "voyager")

	var prompts []DuplicatePrompt
	report, err := a.ApproveWithChecks(func(p DuplicatePrompt) bool {
		prompts = append(prompts, p)
		return p.Candidate == replace
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{replace, fresh}, report.Approved)
	assert.Equal(t, []string{decline}, report.Skipped)
	require.Len(t, prompts, 2)

	assert.Equal(t, "new one", readFile(t, filepath.Join(lib, "Artist", "Album", "01 One More Time.mp3")))
	assert.Equal(t, "voyager", readFile(t, filepath.Join(lib, "Artist", "Album", "09 Voyager.mp3")))
	assert.Equal(t, "old two", readFile(t, filepath.Join(lib, "Artist", "Album", "02 Aerodynamic.mp3")))
	assert.Equal(t, "live", readFile(t, decline))
	assert.NoFileExists(t, replace)
}

func TestApproveWithChecksNilConfirmDeclines(t *testing.T) {
	staging, lib, a := newTrees(t)
	writeFile(t, filepath.Join(lib, "Artist", "Album", "Song.mp3"), "old")
	staged := writeFile(t, filepath.Join(staging, "Artist", "Album", "Song.mp3"), "new")

	report, err := a.ApproveWithChecks(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{staged}, report.Skipped)
	assert.Equal(t, "old", readFile(t, filepath.Join(lib, "Artist", "Album", "Song.mp3")))
}

func TestFindSimilarExisting(t *testing.T) {
	staging, lib, a := newTrees(t)
	match := writeFile(t, filepath.Join(lib, "Artist", "Album", "01 Digital Love.mp3"), "x")
	writeFile(t, filepath.Join(lib, "Artist", "Album", "05 Something Else Entirely.mp3"), "x")
	writeFile(t, filepath.Join(lib, "Artist", "Album", "01 digital love.txt"), "x")
	staged := writeFile(t, filepath.Join(staging, "Artist", "Album", "01 digital love.mp3"), "x")

	matches, err := a.FindSimilarExisting(staged)
	require.NoError(t, err)
	assert.Equal(t, []string{match}, matches)

	none, err := a.FindSimilarExisting(filepath.Join(staging, "Nobody", "Nothing", "x.mp3"))
	require.NoError(t, err)
	assert.Empty(t, none)
}
