package cli

import (
	"context"
	"fmt"
	"io"

	"worker/internal/api"
)

// StatusCommand shows the clock activity of projects
type StatusCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute prints the status of one project, or of all projects when the
// name is empty
func (c *StatusCommand) Execute(ctx context.Context, projectName string) error {
	if projectName != "" {
		status, err := c.businessAPI.GetProjectStatus(ctx, projectName)
		if err != nil {
			return c.errorHandler.Handle("show status", err)
		}
		c.printStatus(status)
		return nil
	}

	statuses, err := c.businessAPI.GetStatus(ctx)
	if err != nil {
		return c.errorHandler.Handle("show status", err)
	}

	if len(statuses) == 0 {
		fmt.Fprintln(c.out, "No projects found")
		return nil
	}
	for _, status := range statuses {
		c.printStatus(status)
	}
	return nil
}

// printStatus writes "Worker: Since 15:14 (1h 0m), 12.50 this month"
func (c *StatusCommand) printStatus(status *api.ProjectStatus) {
	activity := "clocked out"
	if status.Active {
		activity = status.Since
	}
	fmt.Fprintf(c.out, "%s: %s, %s this %s\n", status.Project.Name, activity, status.PeriodTime, status.Period)
}
