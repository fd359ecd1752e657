package capture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudioDevice captures mono float samples from the default input device
// using PortAudio. A blocking read loop delivers one block per stream read,
// so blocks arrive strictly in capture order from a single goroutine.
type PortAudioDevice struct {
	config DeviceConfig

	stream *portaudio.Stream
	buffer []float32
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewPortAudioDevice creates a device for the given capture format.
func NewPortAudioDevice(config DeviceConfig) *PortAudioDevice {
	return &PortAudioDevice{config: config}
}

// Start initializes PortAudio, opens the default mono input stream, and
// launches the read loop. On any failure the already-acquired resources are
// released before returning.
func (d *PortAudioDevice) Start(deliver func(block []float32)) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initialize portaudio: %w", err)
	}

	d.buffer = make([]float32, d.config.FramesPerBlock)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(d.config.SampleRate), len(d.buffer), d.buffer)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open input stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("start input stream: %w", err)
	}

	d.stream = stream
	d.done = make(chan struct{})

	d.wg.Add(1)
	go d.readLoop(d.done, deliver)

	return nil
}

// readLoop blocks on stream reads and delivers each filled block. It exits
// when the stream is stopped (the pending read fails) or done is closed.
// The done channel is passed in so the loop never touches fields Stop writes.
func (d *PortAudioDevice) readLoop(done chan struct{}, deliver func(block []float32)) {
	defer d.wg.Done()

	for {
		select {
		case <-done:
			return
		default:
		}

		if err := d.stream.Read(); err != nil {
			return
		}

		deliver(d.buffer)
	}
}

// Stop releases the capture resources as independent steps: disconnect the
// delivery loop, stop the stream, close it, and terminate PortAudio. Every
// step is attempted regardless of earlier failures; the failures are joined.
func (d *PortAudioDevice) Stop() error {
	var errs []error

	if d.done != nil {
		close(d.done)
	}

	if d.stream != nil {
		if err := d.stream.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop input stream: %w", err))
		}

		d.wg.Wait()

		if err := d.stream.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close input stream: %w", err))
		}
		d.stream = nil
	}
	d.done = nil

	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, fmt.Errorf("terminate portaudio: %w", err))
	}

	return errors.Join(errs...)
}
