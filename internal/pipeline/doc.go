// Package pipeline runs the three-stage response flow for a finished
// recording: transcribe the waveform, then synthesize and play a spoken
// reply while searching for products, rendering both into the history.
// The reply and search stages run concurrently and fail independently; a
// failure in one never suppresses the other.
package pipeline
