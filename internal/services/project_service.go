package services

import (
	"context"

	"worker/internal/domain"
	"worker/internal/errors"
	"worker/internal/logging"
	"worker/internal/repository/sqlite"
	"worker/internal/validation"
)

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.ProjectValidator
	log       *logging.Logger
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(repo sqlite.Repository, validator *validation.ProjectValidator) ProjectService {
	if validator == nil {
		validator = validation.NewProjectValidator()
	}
	return &projectServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validator,
		log:       logging.Named("projects"),
	}
}

// findProjectByName looks a project up by name, ignoring case
func (p *projectServiceImpl) findProjectByName(ctx context.Context, name string) (*domain.Project, error) {
	rows, err := p.repo.FindProjects(ctx, sqlite.EqualTo("name", name))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	project := p.mapper.Project.FromDatabase(*rows[0])
	return &project, nil
}

// CreateProject creates a project, rejecting names that differ from an
// existing one only by case
func (p *projectServiceImpl) CreateProject(ctx context.Context, name, description string) (*domain.Project, error) {
	input, err := p.validator.ValidateProject(name, description)
	if err != nil {
		return nil, err
	}

	existing, err := p.findProjectByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError("project", existing.Name)
	}

	row := p.mapper.Project.ToDatabase(domain.NewProject(input.Name, input.Description))
	if err := p.repo.CreateProject(ctx, &row); err != nil {
		return nil, err
	}

	p.log.Debug().Int64("project_id", row.ID).Str("name", row.Name).Msg("project created")

	project := p.mapper.Project.FromDatabase(row)
	return &project, nil
}

// GetProject retrieves a project by its ID
func (p *projectServiceImpl) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	if err := p.validator.ValidateID("project_id", id); err != nil {
		return nil, err
	}

	row, err := p.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	project := p.mapper.Project.FromDatabase(*row)
	return &project, nil
}

// GetProjectByName retrieves a project by name, ignoring case
func (p *projectServiceImpl) GetProjectByName(ctx context.Context, name string) (*domain.Project, error) {
	normalized, err := p.validator.ValidateProjectName(name)
	if err != nil {
		return nil, err
	}

	project, err := p.findProjectByName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errors.NewNotFoundError("project", normalized)
	}
	return project, nil
}

// ListProjects returns all projects ordered by name
func (p *projectServiceImpl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := p.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return p.mapper.Project.FromDatabaseSlice(rows), nil
}

// DeleteProject deletes a project together with its time intervals
func (p *projectServiceImpl) DeleteProject(ctx context.Context, id int64) error {
	if err := p.validator.ValidateID("project_id", id); err != nil {
		return err
	}

	if err := p.repo.DeleteProject(ctx, id); err != nil {
		return err
	}

	p.log.Debug().Int64("project_id", id).Msg("project deleted")
	return nil
}
