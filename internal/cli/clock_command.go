package cli

import (
	"context"
	"fmt"
	"io"

	"worker/internal/api"
)

// ClockCommand handles the in and out commands
type ClockCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewClockCommand creates a new clock command handler
func NewClockCommand(app *App) *ClockCommand {
	return &ClockCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// In clocks a project in, at is a wall clock time of today or empty for now
func (c *ClockCommand) In(ctx context.Context, projectName, at string) error {
	status, err := c.businessAPI.ClockIn(ctx, projectName, at)
	if err != nil {
		return c.errorHandler.Handle("clock in", err)
	}

	fmt.Fprintf(c.out, "Clocked in: %s\n", status.Project.Name)
	fmt.Fprintf(c.out, "  %s\n", status.Since)
	return nil
}

// Out clocks a project out, at is a wall clock time of today or empty for now
func (c *ClockCommand) Out(ctx context.Context, projectName, at string) error {
	interval, err := c.businessAPI.ClockOut(ctx, projectName, at)
	if err != nil {
		return c.errorHandler.Handle("clock out", err)
	}

	fmt.Fprintf(c.out, "Clocked out: %s\n", projectName)
	fmt.Fprintf(c.out, "  #%d %s (%s)\n", interval.ID, interval.Title, interval.Summary)
	return nil
}
