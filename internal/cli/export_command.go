package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"worker/internal/api"
	"worker/internal/errors"
	"worker/internal/services"
)

// ExportCommand writes the time intervals of a project in a machine
// readable format
type ExportCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute exports every interval of the project in timesheet order
func (c *ExportCommand) Execute(ctx context.Context, projectName, format string, hideRegistered bool) error {
	switch format {
	case "", "csv":
	default:
		return c.errorHandler.HandleSimple(errors.NewInvalidInputError("format", format, "unsupported format, use csv"))
	}

	page, err := c.businessAPI.GetTimesheet(ctx, projectName, services.TimesheetQuery{HideRegistered: hideRegistered})
	if err != nil {
		return c.errorHandler.Handle("export timesheet", err)
	}

	return c.outputCSV(page)
}

// outputCSV writes one row per interval
func (c *ExportCommand) outputCSV(page *api.TimesheetPage) error {
	writer := csv.NewWriter(c.out)

	header := []string{"ID", "Project", "Date", "Start Time", "Stop Time", "Time", "Registered"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, day := range page.Days {
		for _, item := range day.Items {
			var stop string
			if item.Stop != nil {
				stop = item.Stop.Format(time.RFC3339)
			}

			row := []string{
				strconv.FormatInt(item.ID, 10),
				page.Project.Name,
				day.Date.Format(time.DateOnly),
				item.Start.Format(time.RFC3339),
				stop,
				item.Summary,
				strconv.FormatBool(item.Registered),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
