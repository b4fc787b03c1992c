package deps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBinaries(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		if name == "yt-dlp" {
			return "/usr/bin/yt-dlp", nil
		}
		return "", errors.New("not found")
	}

	reqs := append(Requirements("yt-dlp", "ffmpeg"), Requirement{Name: "zsh-completions", Command: "zsh", Optional: true})
	statuses := CheckBinaries(append(reqs, Requirement{Name: "blank"}))
	require.Len(t, statuses, 4)

	assert.True(t, statuses[0].Available)
	assert.Equal(t, "/usr/bin/yt-dlp", statuses[0].Path)

	assert.False(t, statuses[1].Available)
	assert.Contains(t, statuses[1].Detail, "ffmpeg")

	assert.False(t, statuses[2].Available)
	assert.True(t, statuses[2].Optional)

	assert.False(t, statuses[3].Available)
	assert.Equal(t, "command not configured", statuses[3].Detail)

	missing := MissingRequired(statuses)
	require.Len(t, missing, 2)
	assert.Equal(t, "ffmpeg", missing[0].Name)
	assert.Equal(t, "blank", missing[1].Name)
}
