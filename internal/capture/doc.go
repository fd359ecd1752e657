// Package capture owns the recording state machine and the microphone
// lifecycle. It acquires an exclusive mono input device, routes captured
// sample blocks into an ordered accumulator, and on stop performs a
// best-effort release of every device resource before handing the flattened
// waveform to the session handler.
package capture
