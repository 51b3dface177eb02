package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/jmylchreest/staxbar/internal/config"
)

// Player plays the configured chime when a message is pushed. Decoded
// sounds are cached so repeated pushes do not re-read the file.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	enabled   bool
	soundPath string
	volume    float64

	initialized bool
	sampleRate  beep.SampleRate

	cacheMu sync.RWMutex
	cache   map[string]*beep.Buffer
}

// NewPlayer creates a player from the sound config.
func NewPlayer(cfg config.SoundConfig, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	return &Player{
		logger:     logger,
		enabled:    cfg.Enabled,
		soundPath:  cfg.File,
		volume:     float64(cfg.Volume) / 100,
		sampleRate: beep.SampleRate(44100),
		cache:      make(map[string]*beep.Buffer),
	}
}

// ApplyConfig updates the player after a config reload.
func (p *Player) ApplyConfig(cfg config.SoundConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = cfg.Enabled
	p.soundPath = cfg.File
	p.volume = float64(cfg.Volume) / 100
}

// PlayChime plays the configured chime. It is a no-op when sound is
// disabled or no file is configured.
func (p *Player) PlayChime() {
	p.mu.Lock()
	enabled := p.enabled
	path := p.soundPath
	p.mu.Unlock()

	if !enabled || path == "" {
		return
	}
	if err := p.play(path); err != nil {
		p.logger.Warn("failed to play chime", "path", path, "error", err)
	}
}

func (p *Player) play(path string) error {
	path = expandHome(path)

	p.cacheMu.RLock()
	buffer, ok := p.cache[path]
	p.cacheMu.RUnlock()

	if !ok {
		var err error
		buffer, err = p.loadSound(path)
		if err != nil {
			return err
		}
		p.cacheMu.Lock()
		p.cache[path] = buffer
		p.cacheMu.Unlock()
	}

	return p.playBuffer(buffer)
}

// loadSound decodes a WAV, OGG or MP3 file into a buffer.
func (p *Player) loadSound(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := p.ensureInitialized(format.SampleRate); err != nil {
		return nil, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

func (p *Player) ensureInitialized(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	bufferSize := sampleRate.N(100 * time.Millisecond)
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	return nil
}

func (p *Player) playBuffer(buffer *beep.Buffer) error {
	p.mu.Lock()
	volume := p.volume
	sampleRate := p.sampleRate
	p.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())

	if buffer.Format().SampleRate != sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, sampleRate, streamer)
	}

	if volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   volumeToDecibels(volume),
			Silent:   volume == 0,
		}
	}

	speaker.Play(streamer)
	return nil
}

// Close stops playback and drops the cache.
func (p *Player) Close() {
	p.mu.Lock()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	p.mu.Unlock()

	p.cacheMu.Lock()
	p.cache = make(map[string]*beep.Buffer)
	p.cacheMu.Unlock()
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// volumeToDecibels converts a linear volume in [0, 1] to decibels.
func volumeToDecibels(volume float64) float64 {
	if volume <= 0 {
		return -100
	}
	return 20 * math.Log10(volume)
}
