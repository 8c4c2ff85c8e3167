package display

import (
	"github.com/rs/zerolog/log"

	"github.com/rdzcn/lights-raspberry/internal/matrix"
)

// Display abstracts the LED matrix output. Two implementations exist: the
// Unicorn HAT driver (WS2812 over SPI via periph.io) and a logging
// simulator used when no hardware is present.
//
// Inputs are assumed to be pre-validated by the caller; mutating calls
// update an internal frame buffer and Show flushes it to the output.
type Display interface {
	// SetPixel writes one cell of the frame buffer.
	SetPixel(x, y int, c matrix.Color)
	// SetAll replaces the whole frame buffer.
	SetAll(g matrix.Grid)
	// Clear zeroes the frame buffer.
	Clear()
	// SetBrightness stores the intensity scale factor applied at the next Show.
	SetBrightness(v float64)
	// Show flushes the frame buffer to the output.
	Show() error
	// Close releases the underlying port, if any.
	Close() error
}

// Options selects and configures the output at startup.
type Options struct {
	// SPIPort is the periph.io port name, e.g. "/dev/spidev0.0".
	// Empty means the first available port.
	SPIPort string
	// Brightness is the initial intensity scale factor in [0, 1].
	Brightness float64
	// Rotation turns the rendered frame by 0, 90, 180 or 270 degrees.
	Rotation int
}

// Open attempts to initialize the Unicorn HAT and falls back to the
// simulator when that fails. The returned bool reports whether real
// hardware is driving the LEDs. Hardware failure is never fatal.
func Open(opts Options) (Display, bool) {
	d, err := openUnicorn(opts)
	if err != nil {
		log.Warn().Err(err).Msg("Unicorn HAT not available, running in simulation mode")
		return NewSimulator(opts), false
	}
	log.Info().Int("rotation", opts.Rotation).Float64("brightness", opts.Brightness).Msg("Unicorn HAT initialized")
	return d, true
}

// rotate maps logical coordinates to physical ones for the given rotation.
// Width == Height, so the frame shape is preserved for all four angles.
func rotate(x, y, rotation int) (int, int) {
	switch rotation {
	case 90:
		return matrix.Height - 1 - y, x
	case 180:
		return matrix.Width - 1 - x, matrix.Height - 1 - y
	case 270:
		return y, matrix.Width - 1 - x
	default:
		return x, y
	}
}

// scale applies the brightness factor to a single channel.
func scale(channel int, brightness float64) uint8 {
	return uint8(float64(channel) * brightness)
}
