package display

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rdzcn/lights-raspberry/internal/matrix"
)

// Simulator is a no-op Display that logs pixel writes instead of driving
// GPIO. It keeps a frame buffer so tests can inspect what would have been
// displayed.
type Simulator struct {
	mu         sync.Mutex
	frame      matrix.Grid
	brightness float64
	shows      int
}

// NewSimulator creates a simulator with the configured initial brightness.
func NewSimulator(opts Options) *Simulator {
	return &Simulator{brightness: opts.Brightness}
}

func (s *Simulator) SetPixel(x, y int, c matrix.Color) {
	s.mu.Lock()
	s.frame[y][x] = c
	s.mu.Unlock()
	log.Debug().Int("x", x).Int("y", y).Int("r", c.R).Int("g", c.G).Int("b", c.B).Msg("Simulation: set pixel")
}

func (s *Simulator) SetAll(g matrix.Grid) {
	s.mu.Lock()
	s.frame = g
	s.mu.Unlock()
	log.Debug().Msg("Simulation: set full grid")
}

func (s *Simulator) Clear() {
	s.mu.Lock()
	s.frame = matrix.Grid{}
	s.mu.Unlock()
	log.Info().Msg("Simulation: display cleared")
}

func (s *Simulator) SetBrightness(v float64) {
	s.mu.Lock()
	s.brightness = v
	s.mu.Unlock()
	log.Debug().Float64("brightness", v).Msg("Simulation: brightness set")
}

func (s *Simulator) Show() error {
	s.mu.Lock()
	s.shows++
	n := s.shows
	s.mu.Unlock()
	log.Debug().Int("frame", n).Msg("Simulation: display updated")
	return nil
}

func (s *Simulator) Close() error { return nil }

// Frame returns a copy of the current frame buffer.
func (s *Simulator) Frame() matrix.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Brightness returns the stored scale factor.
func (s *Simulator) Brightness() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.brightness
}

// Shows returns how many times the frame was flushed.
func (s *Simulator) Shows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shows
}
