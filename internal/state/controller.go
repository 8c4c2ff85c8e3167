package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rdzcn/lights-raspberry/internal/display"
	"github.com/rdzcn/lights-raspberry/internal/matrix"
)

// HistoryEntry is one previously submitted grid.
type HistoryEntry struct {
	ID        string           `json:"id"`
	Grid      [][]matrix.Color `json:"grid"`
	Timestamp time.Time        `json:"timestamp"`
}

// Controller owns the in-memory matrix state: the grid, the brightness
// scale factor, and the ring of recently submitted grids. All access goes
// through one mutex; net/http serves requests concurrently and partial
// read-modify-write interleavings would corrupt the frame otherwise.
//
// Every mutating operation ends by flushing the grid to the display.
type Controller struct {
	mu          sync.Mutex
	disp        display.Display
	grid        matrix.Grid
	brightness  float64
	history     []HistoryEntry
	historySize int

	autoOff  time.Duration
	offTimer *time.Timer
}

// Options tunes the controller.
type Options struct {
	// Brightness is the initial scale factor.
	Brightness float64
	// HistorySize caps the grid history ring. Zero disables history.
	HistorySize int
	// AutoOff clears the display this long after a grid or pixel write.
	// Zero or negative disables the timer.
	AutoOff time.Duration
}

// New creates a controller around the given display.
func New(disp display.Display, opts Options) *Controller {
	return &Controller{
		disp:        disp,
		brightness:  opts.Brightness,
		historySize: opts.HistorySize,
		autoOff:     opts.AutoOff,
	}
}

// SetGrid replaces all 64 cells, flushes the display, records the grid in
// history and arms the auto-off timer.
func (c *Controller) SetGrid(g matrix.Grid) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid = g
	c.disp.SetAll(g)
	if err := c.disp.Show(); err != nil {
		return err
	}
	c.recordLocked(g)
	c.scheduleAutoOffLocked()
	return nil
}

// SetPixel writes a single cell, flushes the display and arms the auto-off
// timer. Coordinates and color must be pre-validated.
func (c *Controller) SetPixel(x, y int, col matrix.Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid[y][x] = col
	c.disp.SetPixel(x, y, col)
	if err := c.disp.Show(); err != nil {
		return err
	}
	c.scheduleAutoOffLocked()
	return nil
}

// Clear zeroes the grid, flushes the display and cancels any pending
// auto-off.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelAutoOffLocked()
	c.grid = matrix.Grid{}
	c.disp.Clear()
	return c.disp.Show()
}

// SetBrightness stores the scale factor and re-shows the current grid so
// the change is visible immediately. The value must be pre-validated.
func (c *Controller) SetBrightness(v float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brightness = v
	c.disp.SetBrightness(v)
	return c.disp.Show()
}

// Snapshot returns a copy of the current grid.
func (c *Controller) Snapshot() matrix.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid
}

// Brightness returns the current scale factor.
func (c *Controller) Brightness() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brightness
}

// History returns the recorded grids, newest first.
func (c *Controller) History() []HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}

// Close stops the auto-off timer and releases the display.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelAutoOffLocked()
	return c.disp.Close()
}

func (c *Controller) recordLocked(g matrix.Grid) {
	if c.historySize <= 0 {
		return
	}
	entry := HistoryEntry{
		ID:        uuid.NewString(),
		Grid:      g.Rows(),
		Timestamp: time.Now(),
	}
	c.history = append([]HistoryEntry{entry}, c.history...)
	if len(c.history) > c.historySize {
		c.history = c.history[:c.historySize]
	}
	log.Debug().Str("id", entry.ID).Int("entries", len(c.history)).Msg("Grid saved to history")
}

// scheduleAutoOffLocked re-arms the timer, replacing any pending one.
func (c *Controller) scheduleAutoOffLocked() {
	if c.autoOff <= 0 {
		return
	}
	if c.offTimer != nil {
		c.offTimer.Stop()
	}
	c.offTimer = time.AfterFunc(c.autoOff, func() {
		log.Info().Msg("Display auto-off triggered")
		if err := c.Clear(); err != nil {
			log.Error().Err(err).Msg("Auto-off clear failed")
		}
	})
	log.Debug().Dur("after", c.autoOff).Msg("Auto-off scheduled")
}

func (c *Controller) cancelAutoOffLocked() {
	if c.offTimer != nil {
		c.offTimer.Stop()
		c.offTimer = nil
	}
}
