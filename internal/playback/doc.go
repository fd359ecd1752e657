// Package playback plays response audio and recording cue tones through an
// external player process. Playback is best-effort throughout: a missing
// player binary or a failed process is logged and never propagated into the
// recording or response flow.
package playback
