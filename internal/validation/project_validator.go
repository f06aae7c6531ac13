package validation

import (
	"strings"

	"worker/internal/config"
	"worker/internal/errors"
)

// ProjectInput is the user supplied part of a project
type ProjectInput struct {
	Name        string `json:"name" validate:"required,name_length,single_line"`
	Description string `json:"description" validate:"max=1024,text"`
}

// ProjectValidator provides validation for project operations
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator with default bounds
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{validator: NewValidator()}
}

// NewProjectValidatorWithConfig creates a project validator using the
// configured name bounds
func NewProjectValidatorWithConfig(cfg *config.Config) *ProjectValidator {
	return &ProjectValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateProject normalizes and validates a new project. The returned input
// holds the values to store.
func (pv *ProjectValidator) ValidateProject(name, description string) (ProjectInput, error) {
	input := ProjectInput{
		Name:        NormalizeName(name),
		Description: strings.TrimSpace(description),
	}

	if err := pv.validator.Struct(input); err != nil {
		return ProjectInput{}, asAppError(err)
	}
	return input, nil
}

// ValidateProjectName normalizes and validates a project name used for lookup
func (pv *ProjectValidator) ValidateProjectName(name string) (string, error) {
	input, err := pv.ValidateProject(name, "")
	if err != nil {
		return "", err
	}
	return input.Name, nil
}

// ValidateID checks a project or time interval id
func (pv *ProjectValidator) ValidateID(field string, id int64) error {
	return pv.validator.ValidateID(field, id)
}

func asAppError(err error) error {
	if ve, ok := err.(*ValidationError); ok {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return errors.NewValidationError("invalid project", err)
}
