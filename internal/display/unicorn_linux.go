//go:build linux

package display

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"github.com/rdzcn/lights-raspberry/internal/matrix"
)

// unicorn drives the HAT's WS2812 chain over SPI. The 64 LEDs are wired as
// a single strip in row-major order, so the 8x8 frame is flattened before
// each flush.
type unicorn struct {
	mu         sync.Mutex
	dev        *nrzled.Dev
	port       spi.PortCloser
	frame      matrix.Grid
	brightness float64
	rotation   int
}

func openUnicorn(opts Options) (Display, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	port, err := spireg.Open(opts.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("open SPI port %q: %w", opts.SPIPort, err)
	}
	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: matrix.Width * matrix.Height,
		Channels:  3,
		Freq:      2500 * physic.KiloHertz,
	})
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("init WS2812 chain: %w", err)
	}
	u := &unicorn{
		dev:        dev,
		port:       port,
		brightness: opts.Brightness,
		rotation:   opts.Rotation,
	}
	// Start from a dark matrix regardless of what a previous process left lit.
	if err := u.Show(); err != nil {
		port.Close()
		return nil, err
	}
	return u, nil
}

func (u *unicorn) SetPixel(x, y int, c matrix.Color) {
	u.mu.Lock()
	u.frame[y][x] = c
	u.mu.Unlock()
}

func (u *unicorn) SetAll(g matrix.Grid) {
	u.mu.Lock()
	u.frame = g
	u.mu.Unlock()
}

func (u *unicorn) Clear() {
	u.mu.Lock()
	u.frame = matrix.Grid{}
	u.mu.Unlock()
}

func (u *unicorn) SetBrightness(v float64) {
	u.mu.Lock()
	u.brightness = v
	u.mu.Unlock()
}

// Show encodes the frame buffer as a 64x1 strip image with rotation and
// brightness applied and pushes it to the chain.
func (u *unicorn) Show() error {
	u.mu.Lock()
	img := image.NewNRGBA(image.Rect(0, 0, matrix.Width*matrix.Height, 1))
	for y := 0; y < matrix.Height; y++ {
		for x := 0; x < matrix.Width; x++ {
			px, py := rotate(x, y, u.rotation)
			c := u.frame[y][x]
			img.SetNRGBA(py*matrix.Width+px, 0, color.NRGBA{
				R: scale(c.R, u.brightness),
				G: scale(c.G, u.brightness),
				B: scale(c.B, u.brightness),
				A: 255,
			})
		}
	}
	u.mu.Unlock()

	if err := u.dev.Draw(u.dev.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

func (u *unicorn) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.port == nil {
		return nil
	}
	err := u.dev.Halt()
	if cerr := u.port.Close(); err == nil {
		err = cerr
	}
	u.port = nil
	return err
}
