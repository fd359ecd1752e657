package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/MaJuniors/voice-commerce/internal/api"
	"github.com/MaJuniors/voice-commerce/internal/metrics"
	"github.com/MaJuniors/voice-commerce/internal/present"
)

// Backend is the voice commerce API surface the pipeline depends on.
type Backend interface {
	Transcribe(ctx context.Context, wavData []byte) (string, error)
	SynthesizeReply(ctx context.Context, text string) ([]byte, string, error)
	SearchProducts(ctx context.Context, query string, limit int) (*api.SearchResult, error)
}

// AudioPlayer plays a synthesized reply payload.
type AudioPlayer interface {
	Play(data []byte) error
}

// View receives the rendered history output of a pipeline run.
type View interface {
	Log(text string, style present.Style)
	RenderProducts(query string, result *api.SearchResult)
}

// Result summarizes one pipeline run. Stage errors are recorded per stage;
// a nil error means the stage succeeded or was short-circuited.
type Result struct {
	Transcript    string
	TranscribeErr error
	ReplyPlayed   bool
	ReplyErr      error
	Products      *api.SearchResult
	SearchErr     error
}

// Config contains pipeline configuration.
type Config struct {
	SearchLimit int
}

// Orchestrator runs the response pipeline for finished recordings.
type Orchestrator struct {
	logger  *slog.Logger
	backend Backend
	player  AudioPlayer
	view    View
	metrics *metrics.Metrics
	config  Config
}

// NewOrchestrator creates a pipeline. The metrics may be nil.
func NewOrchestrator(logger *slog.Logger, backend Backend, player AudioPlayer, view View, m *metrics.Metrics, config Config) *Orchestrator {
	if config.SearchLimit <= 0 {
		config.SearchLimit = 3
	}

	return &Orchestrator{
		logger:  logger,
		backend: backend,
		player:  player,
		view:    view,
		metrics: m,
		config:  config,
	}
}

// Run executes the pipeline for one encoded recording. The transcription
// stage gates the rest: on failure or an empty transcript the reply and
// search stages never start. The two downstream stages run concurrently and
// Run returns after both finish.
func (o *Orchestrator) Run(ctx context.Context, wavData []byte) *Result {
	result := &Result{}

	o.view.Log("Memproses rekaman...", present.StyleMuted)

	transcript, err := o.transcribe(ctx, wavData)
	if err != nil {
		result.TranscribeErr = err
		o.view.Log(fmt.Sprintf("Transkripsi gagal: %v", err), present.StyleError)
		return result
	}

	result.Transcript = transcript
	if transcript == "" {
		if o.metrics != nil {
			o.metrics.RecordEmptyTranscript()
		}
		o.view.Log("Tidak ada suara yang terdeteksi", present.StyleMuted)
		return result
	}

	o.view.Log("Kamu: "+transcript, present.StyleUser)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		result.ReplyPlayed, result.ReplyErr = o.speakReply(ctx, transcript)
	}()

	go func() {
		defer wg.Done()
		result.Products, result.SearchErr = o.searchProducts(ctx, transcript)
	}()

	wg.Wait()
	return result
}

func (o *Orchestrator) transcribe(ctx context.Context, wavData []byte) (string, error) {
	if o.metrics != nil {
		o.metrics.RecordTranscriptionRequest()
	}

	start := time.Now()
	text, err := o.backend.Transcribe(ctx, wavData)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		if o.metrics != nil {
			o.metrics.RecordTranscriptionFailure(elapsed)
		}
		o.logger.Error("transcription failed",
			slog.String("error", err.Error()),
			slog.Float64("duration_seconds", elapsed),
		)
		return "", err
	}

	if o.metrics != nil {
		o.metrics.RecordTranscriptionSuccess(elapsed)
	}

	text = strings.TrimSpace(text)
	o.logger.Info("transcription completed",
		slog.Int("chars", len(text)),
		slog.Float64("duration_seconds", elapsed),
	)

	return text, nil
}

func (o *Orchestrator) speakReply(ctx context.Context, transcript string) (bool, error) {
	if o.metrics != nil {
		o.metrics.RecordReplyRequest()
	}

	start := time.Now()
	data, contentType, err := o.backend.SynthesizeReply(ctx, transcript)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		if o.metrics != nil {
			o.metrics.RecordReplyFailure(elapsed)
		}
		o.logger.Error("reply synthesis failed", slog.String("error", err.Error()))
		o.view.Log(fmt.Sprintf("Balasan suara gagal: %v", err), present.StyleError)
		return false, err
	}

	if o.metrics != nil {
		o.metrics.RecordReplySuccess(elapsed)
	}

	o.logger.Info("reply synthesized",
		slog.Int("bytes", len(data)),
		slog.String("content_type", contentType),
	)

	if err := o.player.Play(data); err != nil {
		if o.metrics != nil {
			o.metrics.RecordPlaybackFailure()
		}
		o.logger.Warn("reply playback failed", slog.String("error", err.Error()))
		o.view.Log("Balasan suara tidak dapat diputar", present.StyleError)
		return false, err
	}

	return true, nil
}

func (o *Orchestrator) searchProducts(ctx context.Context, transcript string) (*api.SearchResult, error) {
	if o.metrics != nil {
		o.metrics.RecordSearchRequest()
	}

	start := time.Now()
	result, err := o.backend.SearchProducts(ctx, transcript, o.config.SearchLimit)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		if o.metrics != nil {
			o.metrics.RecordSearchFailure(elapsed)
		}
		o.logger.Error("product search failed", slog.String("error", err.Error()))
		o.view.Log(fmt.Sprintf("Pencarian produk gagal: %v", err), present.StyleError)
		return nil, err
	}

	if o.metrics != nil {
		o.metrics.RecordSearchSuccess(elapsed, len(result.Items))
	}

	o.logger.Info("product search completed",
		slog.Int("count", len(result.Items)),
		slog.String("keyword", result.Keyword),
	)

	o.view.RenderProducts(transcript, result)
	return result, nil
}
