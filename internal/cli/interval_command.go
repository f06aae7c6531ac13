package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"worker/internal/api"
	"worker/internal/errors"
)

// IntervalCommand handles the register, unregister and remove commands
type IntervalCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewIntervalCommand creates a new interval command handler
func NewIntervalCommand(app *App) *IntervalCommand {
	return &IntervalCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// parseIntervalID reads the id printed by the timesheet command
func parseIntervalID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("interval id", arg, "must be a positive integer")
	}
	return id, nil
}

// Register marks a stopped interval as registered
func (c *IntervalCommand) Register(ctx context.Context, arg string) error {
	id, err := parseIntervalID(arg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	interval, err := c.businessAPI.RegisterInterval(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("register interval", err)
	}

	fmt.Fprintf(c.out, "Registered #%d %s\n", interval.ID, interval.Title)
	return nil
}

// Unregister clears the registered flag of an interval
func (c *IntervalCommand) Unregister(ctx context.Context, arg string) error {
	id, err := parseIntervalID(arg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	interval, err := c.businessAPI.UnregisterInterval(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("unregister interval", err)
	}

	fmt.Fprintf(c.out, "Unregistered #%d %s\n", interval.ID, interval.Title)
	return nil
}

// Remove deletes an interval
func (c *IntervalCommand) Remove(ctx context.Context, arg string) error {
	id, err := parseIntervalID(arg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.businessAPI.RemoveInterval(ctx, id); err != nil {
		return c.errorHandler.Handle("remove interval", err)
	}

	fmt.Fprintf(c.out, "Removed #%d\n", id)
	return nil
}
