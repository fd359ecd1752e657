// Package audio handles sample accumulation and audio container encoding.
// It implements ordered accumulation of capture blocks and byte-exact
// encoding of a captured waveform to a mono 16-bit PCM WAV container for
// upload to the transcription backend.
package audio
