package cli

import (
	"context"
	"fmt"
	"io"

	"worker/internal/api"
)

// ProjectCommand handles the project subcommands
type ProjectCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewProjectCommand creates a new project command handler
func NewProjectCommand(app *App) *ProjectCommand {
	return &ProjectCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Add creates a project
func (c *ProjectCommand) Add(ctx context.Context, name, description string) error {
	project, err := c.businessAPI.CreateProject(ctx, name, description)
	if err != nil {
		return c.errorHandler.Handle("add project", err)
	}

	fmt.Fprintf(c.out, "Added project: %s\n", project.Name)
	return nil
}

// List prints one line per project, followed by its description when set
func (c *ProjectCommand) List(ctx context.Context) error {
	projects, err := c.businessAPI.ListProjects(ctx)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}

	if len(projects) == 0 {
		fmt.Fprintln(c.out, "No projects found")
		return nil
	}

	for _, project := range projects {
		if project.Description == "" {
			fmt.Fprintln(c.out, project.Name)
			continue
		}
		fmt.Fprintf(c.out, "%s: %s\n", project.Name, project.Description)
	}
	return nil
}

// Remove deletes a project and its time intervals
func (c *ProjectCommand) Remove(ctx context.Context, name string) error {
	if err := c.businessAPI.RemoveProject(ctx, name); err != nil {
		return c.errorHandler.Handle("remove project", err)
	}

	fmt.Fprintf(c.out, "Removed project: %s\n", name)
	return nil
}
