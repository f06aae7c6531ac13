package cli

import (
	"io"
	"os"

	"worker/internal/api"
	"worker/internal/config"
)

// App holds what the command handlers share
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	out         io.Writer
}

// NewApp creates a new CLI application instance with dependency injection.
// A nil writer prints to stdout.
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		out:         out,
	}
}
