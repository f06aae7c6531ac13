package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"worker/internal/repository/sqlite"
)

func TestCreateRepository(t *testing.T) {
	// Keep the user's home directory and config file out of the test
	t.Setenv("HOME", t.TempDir())
	dbDir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("WORKER_DB_DIR", dbDir)

	loader := NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	repo, err := CreateRepository(cfg)
	if err != nil {
		t.Fatalf("CreateRepository() error = %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(cfg.GetDatabasePath()); err != nil {
		t.Errorf("expected database file at %s: %v", cfg.GetDatabasePath(), err)
	}

	project := &sqlite.Project{Name: "Worker"}
	if err := repo.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	projects, err := repo.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Worker" {
		t.Errorf("ListProjects() = %v, expected the created project", projects)
	}
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	if err != nil {
		t.Fatalf("CreateTestRepository() error = %v", err)
	}
	defer repo.Close()

	project := &sqlite.Project{Name: "Worker"}
	if err := repo.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	interval := &sqlite.TimeInterval{ProjectID: project.ID, StartMs: 1000}
	if err := repo.CreateTimeInterval(context.Background(), interval); err != nil {
		t.Fatalf("CreateTimeInterval() error = %v", err)
	}

	active, err := repo.GetActiveTimeInterval(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("GetActiveTimeInterval() error = %v", err)
	}
	if active.ID != interval.ID {
		t.Errorf("GetActiveTimeInterval() id = %d, expected %d", active.ID, interval.ID)
	}
}
