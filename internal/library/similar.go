package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/handiism/songripper/internal/model"
)

// SimilarityThreshold is the lowest ratio at which two file stems count as
// possible duplicates.
const SimilarityThreshold = 0.6

// Similarity returns the difflib sequence ratio of two strings compared
// character by character, ignoring case. Identical strings score 1.
func Similarity(a, b string) float64 {
	m := difflib.NewMatcher(chars(strings.ToLower(a)), chars(strings.ToLower(b)))
	return m.Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// FindSimilar returns the audio files in destDir whose stem is at least
// SimilarityThreshold similar to stem. A missing destDir has no matches.
func FindSimilar(destDir, stem string) ([]string, error) {
	entries, err := os.ReadDir(destDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", destDir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() || !model.IsAudioFile(entry.Name()) {
			continue
		}
		existing := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if Similarity(existing, stem) >= SimilarityThreshold {
			matches = append(matches, filepath.Join(destDir, entry.Name()))
		}
	}
	return matches, nil
}
