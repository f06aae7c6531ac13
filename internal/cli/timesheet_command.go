package cli

import (
	"context"
	"fmt"
	"io"

	"worker/internal/api"
	"worker/internal/services"
)

// TimesheetCommand prints the per-day timesheet of a project
type TimesheetCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewTimesheetCommand creates a new timesheet command handler
func NewTimesheetCommand(app *App) *TimesheetCommand {
	return &TimesheetCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute prints one block per day: the day summary followed by its
// intervals, each prefixed with the id used by register and remove
func (c *TimesheetCommand) Execute(ctx context.Context, projectName string, query services.TimesheetQuery) error {
	page, err := c.businessAPI.GetTimesheet(ctx, projectName, query)
	if err != nil {
		return c.errorHandler.Handle("show timesheet", err)
	}

	if len(page.Days) == 0 {
		fmt.Fprintf(c.out, "No time registered for %s\n", page.Project.Name)
		return nil
	}

	for _, day := range page.Days {
		fmt.Fprintf(c.out, "%s  %s%s\n", day.Title, day.Summary, registeredMark(day.Registered))
		for _, item := range day.Items {
			fmt.Fprintf(c.out, "  #%-5d %-15s %s%s\n", item.ID, item.Title, item.Summary, registeredMark(item.Registered))
		}
	}

	if page.HasMore {
		fmt.Fprintf(c.out, "More days available, continue with --offset %d\n", query.Offset+len(page.Days))
	}
	return nil
}

func registeredMark(registered bool) string {
	if registered {
		return "  [registered]"
	}
	return ""
}
