package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/rdzcn/lights-raspberry/internal/config"
	"github.com/rdzcn/lights-raspberry/internal/display"
	"github.com/rdzcn/lights-raspberry/internal/server"
	"github.com/rdzcn/lights-raspberry/internal/state"
)

// App wires the display, the state controller and the HTTP server together
// and manages their lifecycle.
type App struct {
	cfg    *config.Config
	ctrl   *state.Controller
	server *server.Server
}

// New opens the display (falling back to the simulator when no hardware is
// present) and builds the controller and server around it.
func New(cfg *config.Config) *App {
	disp, available := display.Open(display.Options{
		SPIPort:    cfg.Display.SPIPort,
		Brightness: cfg.Display.Brightness,
		Rotation:   cfg.Display.Rotation,
	})

	ctrl := state.New(disp, state.Options{
		Brightness:  cfg.Display.Brightness,
		HistorySize: cfg.History.Size,
		AutoOff:     cfg.Display.AutoOff.Duration(),
	})

	return &App{
		cfg:    cfg,
		ctrl:   ctrl,
		server: server.New(cfg, ctrl, available),
	}
}

// Run serves HTTP until the context is cancelled, then releases the display.
func (a *App) Run(ctx context.Context) error {
	err := a.server.Run(ctx)
	if cerr := a.ctrl.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("Error closing display")
	}
	return err
}

// SignalContext creates a context that is cancelled when SIGINT or SIGTERM is received.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	return ctx
}
