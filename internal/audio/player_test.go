package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolumeToDecibels(t *testing.T) {
	assert.InDelta(t, 0.0, volumeToDecibels(1.0), 1e-9)
	assert.InDelta(t, -6.02, volumeToDecibels(0.5), 0.01)
	assert.InDelta(t, -20.0, volumeToDecibels(0.1), 0.01)
	assert.Equal(t, -100.0, volumeToDecibels(0))
	assert.Equal(t, -100.0, volumeToDecibels(-1))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	assert.Equal(t, filepath.Join(home, "chime.wav"), expandHome("~/chime.wav"))
	assert.Equal(t, "/usr/share/sounds/chime.wav", expandHome("/usr/share/sounds/chime.wav"))
}
