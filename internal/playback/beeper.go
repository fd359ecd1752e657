package playback

import (
	"log/slog"

	"github.com/MaJuniors/voice-commerce/internal/audio"
)

const (
	startCueFrequency = 1200.0
	stopCueFrequency  = 800.0
	cueDuration       = 0.110
	cueSampleRate     = 16000
)

// Beeper plays short tone cues marking the start and stop of a recording.
// Cues play asynchronously so the state transition never waits on audio.
type Beeper struct {
	logger  *slog.Logger
	player  *Player
	enabled bool

	startCue []byte
	stopCue  []byte
}

// NewBeeper pre-encodes the cue tones so playing one is only a process spawn.
func NewBeeper(logger *slog.Logger, player *Player, enabled bool) *Beeper {
	b := &Beeper{
		logger:  logger,
		player:  player,
		enabled: enabled && player.Enabled(),
	}

	if b.enabled {
		b.startCue = encodeCue(startCueFrequency)
		b.stopCue = encodeCue(stopCueFrequency)
	}

	return b
}

func encodeCue(frequency float64) []byte {
	data, err := audio.EncodeWAV(SineTone(frequency, cueDuration, cueSampleRate, cueGain), cueSampleRate)
	if err != nil {
		return nil
	}
	return data
}

// RecordingStarted plays the high start tone.
func (b *Beeper) RecordingStarted() {
	b.playCue("start", b.startCue)
}

// RecordingStopped plays the low stop tone.
func (b *Beeper) RecordingStopped() {
	b.playCue("stop", b.stopCue)
}

func (b *Beeper) playCue(name string, data []byte) {
	if !b.enabled || data == nil {
		return
	}

	go func() {
		if err := b.player.Play(data); err != nil {
			b.logger.Warn("cue playback failed",
				slog.String("cue", name),
				slog.String("error", err.Error()),
			)
		}
	}()
}
