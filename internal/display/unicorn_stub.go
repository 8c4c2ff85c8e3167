//go:build !linux

package display

import "errors"

// SPI access to the HAT requires linux spidev.
func openUnicorn(Options) (Display, error) {
	return nil, errors.New("unicorn hat is only supported on linux")
}
