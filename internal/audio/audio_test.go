package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// createMinimalMP3 writes a single MPEG1 Layer3 frame (128kbps, 44100Hz)
// so tag libraries have a real file to work on.
func createMinimalMP3(t *testing.T, path string) {
	t.Helper()
	frame := make([]byte, 417)
	frame[0] = 0xff
	frame[1] = 0xfb
	frame[2] = 0x90
	frame[3] = 0x00

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, frame, 0o600))
}
