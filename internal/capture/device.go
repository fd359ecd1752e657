package capture

// DeviceConfig describes the capture format requested from an input device.
type DeviceConfig struct {
	SampleRate     int
	FramesPerBlock int
}

// Device is an exclusive single-channel audio input. Start begins delivering
// fixed-size sample blocks, in capture order, from a single producer. Stop
// halts delivery and releases every acquired resource; it must attempt all
// release steps even when one of them fails, joining the individual failures
// into the returned error.
type Device interface {
	Start(deliver func(block []float32)) error
	Stop() error
}
