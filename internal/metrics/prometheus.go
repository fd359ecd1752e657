package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the voice commerce client
type Metrics struct {
	// Recording session metrics
	SessionsStarted   prometheus.Counter
	SessionsCompleted prometheus.Counter
	SessionDuration   prometheus.Histogram
	SamplesCaptured   prometheus.Counter
	PayloadSize       prometheus.Histogram

	// Pipeline stage metrics
	TranscriptionRequests  prometheus.Counter
	TranscriptionSuccesses prometheus.Counter
	TranscriptionFailures  prometheus.Counter
	TranscriptionDuration  prometheus.Histogram
	EmptyTranscripts       prometheus.Counter

	ReplyRequests  prometheus.Counter
	ReplySuccesses prometheus.Counter
	ReplyFailures  prometheus.Counter
	ReplyDuration  prometheus.Histogram

	SearchRequests  prometheus.Counter
	SearchSuccesses prometheus.Counter
	SearchFailures  prometheus.Counter
	SearchDuration  prometheus.Histogram
	ProductsFound   prometheus.Histogram

	// Playback metrics
	PlaybackFailures prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		// Recording session metrics
		SessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_sessions_started_total",
			Help: "Total number of recording sessions started",
		}),
		SessionsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_sessions_completed_total",
			Help: "Total number of recording sessions completed",
		}),
		SessionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vc_session_duration_seconds",
			Help:    "Duration of recorded audio per session",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s to ~30s
		}),
		SamplesCaptured: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_samples_captured_total",
			Help: "Total number of audio samples captured",
		}),
		PayloadSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vc_payload_size_bytes",
			Help:    "Size of encoded WAV payloads in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 12), // 1KB to ~4MB
		}),

		// Transcription stage metrics
		TranscriptionRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_transcription_requests_total",
			Help: "Total number of transcription requests sent",
		}),
		TranscriptionSuccesses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_transcription_successes_total",
			Help: "Total number of successful transcription requests",
		}),
		TranscriptionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_transcription_failures_total",
			Help: "Total number of failed transcription requests",
		}),
		TranscriptionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vc_transcription_duration_seconds",
			Help:    "Duration of transcription requests",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~2 minutes
		}),
		EmptyTranscripts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_empty_transcripts_total",
			Help: "Total number of sessions transcribed to empty text",
		}),

		// Reply stage metrics
		ReplyRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_reply_requests_total",
			Help: "Total number of reply synthesis requests sent",
		}),
		ReplySuccesses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_reply_successes_total",
			Help: "Total number of successful reply synthesis requests",
		}),
		ReplyFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_reply_failures_total",
			Help: "Total number of failed reply synthesis requests",
		}),
		ReplyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vc_reply_duration_seconds",
			Help:    "Duration of reply synthesis requests",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),

		// Search stage metrics
		SearchRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_search_requests_total",
			Help: "Total number of product search requests sent",
		}),
		SearchSuccesses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_search_successes_total",
			Help: "Total number of successful product search requests",
		}),
		SearchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_search_failures_total",
			Help: "Total number of failed product search requests",
		}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vc_search_duration_seconds",
			Help:    "Duration of product search requests",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		ProductsFound: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vc_products_found",
			Help:    "Number of products returned per search",
			Buckets: prometheus.LinearBuckets(0, 1, 11), // 0 to 10
		}),

		// Playback metrics
		PlaybackFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vc_playback_failures_total",
			Help: "Total number of audio playback failures",
		}),
	}
}

// RecordSessionStarted increments the sessions started counter
func (m *Metrics) RecordSessionStarted() {
	m.SessionsStarted.Inc()
}

// RecordSessionCompleted records a completed session and its captured audio
func (m *Metrics) RecordSessionCompleted(durationSeconds float64, samples int) {
	m.SessionsCompleted.Inc()
	m.SessionDuration.Observe(durationSeconds)
	m.SamplesCaptured.Add(float64(samples))
}

// RecordPayload records the size of an encoded WAV payload
func (m *Metrics) RecordPayload(sizeBytes int) {
	m.PayloadSize.Observe(float64(sizeBytes))
}

// RecordTranscriptionRequest increments the transcription requests counter
func (m *Metrics) RecordTranscriptionRequest() {
	m.TranscriptionRequests.Inc()
}

// RecordTranscriptionSuccess records a successful transcription
func (m *Metrics) RecordTranscriptionSuccess(durationSeconds float64) {
	m.TranscriptionSuccesses.Inc()
	m.TranscriptionDuration.Observe(durationSeconds)
}

// RecordTranscriptionFailure records a failed transcription
func (m *Metrics) RecordTranscriptionFailure(durationSeconds float64) {
	m.TranscriptionFailures.Inc()
	m.TranscriptionDuration.Observe(durationSeconds)
}

// RecordEmptyTranscript increments the empty transcripts counter
func (m *Metrics) RecordEmptyTranscript() {
	m.EmptyTranscripts.Inc()
}

// RecordReplyRequest increments the reply requests counter
func (m *Metrics) RecordReplyRequest() {
	m.ReplyRequests.Inc()
}

// RecordReplySuccess records a successful reply synthesis
func (m *Metrics) RecordReplySuccess(durationSeconds float64) {
	m.ReplySuccesses.Inc()
	m.ReplyDuration.Observe(durationSeconds)
}

// RecordReplyFailure records a failed reply synthesis
func (m *Metrics) RecordReplyFailure(durationSeconds float64) {
	m.ReplyFailures.Inc()
	m.ReplyDuration.Observe(durationSeconds)
}

// RecordSearchRequest increments the search requests counter
func (m *Metrics) RecordSearchRequest() {
	m.SearchRequests.Inc()
}

// RecordSearchSuccess records a successful search and its result count
func (m *Metrics) RecordSearchSuccess(durationSeconds float64, products int) {
	m.SearchSuccesses.Inc()
	m.SearchDuration.Observe(durationSeconds)
	m.ProductsFound.Observe(float64(products))
}

// RecordSearchFailure records a failed search
func (m *Metrics) RecordSearchFailure(durationSeconds float64) {
	m.SearchFailures.Inc()
	m.SearchDuration.Observe(durationSeconds)
}

// RecordPlaybackFailure increments the playback failures counter
func (m *Metrics) RecordPlaybackFailure() {
	m.PlaybackFailures.Inc()
}
