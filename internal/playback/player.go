package playback

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
)

// candidatePlayers are tried in order when no player command is configured.
// Each reads the audio payload from stdin.
var candidatePlayers = [][]string{
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", "-"},
	{"mpv", "--no-terminal", "--no-video", "-"},
	{"mpg123", "-q", "-"},
	{"aplay", "-q"},
}

// Player plays audio payloads by piping them to an external player process.
type Player struct {
	logger  *slog.Logger
	command []string
}

// NewPlayer creates a player. When command is empty the first available
// candidate binary on PATH is used; when none is found the player is disabled
// and Play becomes a logged no-op.
func NewPlayer(logger *slog.Logger, command []string) *Player {
	if len(command) == 0 {
		command = detectPlayer()
		if command == nil {
			logger.Warn("no audio player binary found, playback disabled")
		}
	}

	p := &Player{
		logger:  logger,
		command: command,
	}

	if p.command != nil {
		logger.Info("audio player configured", slog.String("command", p.command[0]))
	}

	return p
}

// NewDisabledPlayer creates a player whose Play is always a no-op.
func NewDisabledPlayer(logger *slog.Logger) *Player {
	return &Player{logger: logger}
}

func detectPlayer() []string {
	for _, candidate := range candidatePlayers {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return candidate
		}
	}
	return nil
}

// Enabled reports whether a player process is available.
func (p *Player) Enabled() bool {
	return p.command != nil
}

// Play pipes the audio payload to the player process and waits for it to
// exit. It blocks for the duration of playback.
func (p *Player) Play(data []byte) error {
	if p.command == nil {
		p.logger.Debug("playback skipped, no player available", slog.Int("bytes", len(data)))
		return nil
	}

	if len(data) == 0 {
		return nil
	}

	cmd := exec.Command(p.command[0], p.command[1:]...)
	cmd.Stdin = bytes.NewReader(data)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("player %s: %w", p.command[0], err)
	}

	return nil
}
