package domain

import "strings"

// Project groups time intervals under a user chosen name.
type Project struct {
	ID          int64
	Name        string
	Description string
}

// NewProject creates a new Project with the given name.
func NewProject(name, description string) Project {
	return Project{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
}

// IsValid checks if the project has a name.
func (p Project) IsValid() bool {
	return p.Name != ""
}

// String returns the project name for display purposes.
func (p Project) String() string {
	return p.Name
}
