package capture

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MaJuniors/voice-commerce/internal/audio"
)

// State represents the recording state machine's current state.
type State int

const (
	// StateIdle means no session is active and the input device is released.
	StateIdle State = iota
	// StateRecording means a session is active and owns the input device.
	StateRecording
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Session is one completed start-to-stop recording interaction: the flattened
// waveform of every captured block, in arrival order.
type Session struct {
	ID         string
	StartedAt  time.Time
	StoppedAt  time.Time
	SampleRate int
	Samples    []float32
}

// Duration returns the captured audio duration.
func (s Session) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// SessionHandler receives the finalized waveform of a stopped session. It is
// invoked after the device is fully released, so a new session may start
// while the handler (typically the response pipeline) is still running.
type SessionHandler func(session Session)

// Cue signals the start/stop of a recording to the user. Implementations are
// best-effort; they must not fail the state transition.
type Cue interface {
	RecordingStarted()
	RecordingStopped()
}

// Recorder is the recording state machine. It is the sole owner and mutator
// of the session state: at most one session is active at any time, a start
// while recording is a no-op, and a stop while idle is a no-op.
type Recorder struct {
	logger     *slog.Logger
	device     Device
	sampleRate int
	handler    SessionHandler
	cue        Cue

	mu        sync.Mutex
	state     State
	buffer    *audio.Buffer
	sessionID string
	startedAt time.Time
}

// Config contains recorder configuration.
type Config struct {
	SampleRate int
}

// NewRecorder creates a recording state machine in the idle state.
// The cue may be nil.
func NewRecorder(logger *slog.Logger, device Device, config Config, handler SessionHandler, cue Cue) (*Recorder, error) {
	if device == nil {
		return nil, fmt.Errorf("device cannot be nil")
	}

	if config.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", config.SampleRate)
	}

	return &Recorder{
		logger:     logger,
		device:     device,
		sampleRate: config.SampleRate,
		handler:    handler,
		cue:        cue,
		state:      StateIdle,
		buffer:     audio.NewBuffer(64),
	}, nil
}

// State returns the current state of the machine.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start begins a new recording session: it signals the start cue, clears any
// buffer left from a previous session, and acquires the input device. A start
// while already recording is ignored. On device-acquisition failure the
// machine stays idle and the error is returned after being logged.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRecording {
		r.logger.Debug("start ignored, already recording", slog.String("session_id", r.sessionID))
		return nil
	}

	if r.cue != nil {
		r.cue.RecordingStarted()
	}

	r.buffer.Reset()

	if err := r.device.Start(r.buffer.AppendBlock); err != nil {
		r.logger.Error("failed to acquire input device", slog.String("error", err.Error()))
		return fmt.Errorf("acquire input device: %w", err)
	}

	r.sessionID = uuid.NewString()
	r.startedAt = time.Now()
	r.state = StateRecording

	r.logger.Info("recording started",
		slog.String("session_id", r.sessionID),
		slog.Int("sample_rate", r.sampleRate),
	)

	return nil
}

// Stop ends the active recording session. The device release is best-effort:
// failures are logged and never abort the transition. The accumulated blocks
// are flattened into the session waveform and handed to the session handler;
// a session with zero samples is still handed off. A stop while idle is
// ignored.
func (r *Recorder) Stop() {
	r.mu.Lock()

	if r.state != StateRecording {
		r.logger.Debug("stop ignored, not recording")
		r.mu.Unlock()
		return
	}

	if r.cue != nil {
		r.cue.RecordingStopped()
	}

	if err := r.device.Stop(); err != nil {
		r.logger.Warn("input device release reported failures", slog.String("error", err.Error()))
	}

	session := Session{
		ID:         r.sessionID,
		StartedAt:  r.startedAt,
		StoppedAt:  time.Now(),
		SampleRate: r.sampleRate,
		Samples:    r.buffer.Flatten(),
	}

	stats := r.buffer.GetStats()
	r.buffer.Reset()
	r.state = StateIdle
	handler := r.handler

	r.mu.Unlock()

	r.logger.Info("recording stopped",
		slog.String("session_id", session.ID),
		slog.Int("blocks", stats.Blocks),
		slog.Int("samples", len(session.Samples)),
		slog.Duration("duration", session.Duration()),
	)

	if handler != nil {
		handler(session)
	}
}
