package core

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/prithwish249/create-vite-tailwind/internal/config"
	"github.com/prithwish249/create-vite-tailwind/internal/logger"
	"github.com/prithwish249/create-vite-tailwind/internal/templates"
)

const manifestFile = "package.json"

// Scaffolder generates one project: generator, installs, template files,
// directory tree, manifest patch and cleanup, in that order.
type Scaffolder struct {
	Runner Runner
	Config *config.Config
	Layout *templates.Layout
	Files  fs.FS // template tree written over the generated project
}

// Result describes what Create produced.
type Result struct {
	ProjectDir  string
	Files       []string
	Directories []string
	Removed     []string
}

// Create scaffolds name inside parentDir. The first failing step aborts the
// run and leaves completed steps in place; cleanup failures are ignored.
func (s *Scaffolder) Create(ctx context.Context, parentDir string, name string) (*Result, error) {
	cfg := s.Config
	projectDir := filepath.Join(parentDir, name)

	logger.Info("Creating a new Vite + Tailwind CSS React project in %s...\n", name)
	if err := s.Runner.Run(ctx, parentDir, cfg.PackageManager, "create", cfg.Generator, name, "--template", cfg.Template); err != nil {
		return nil, err
	}

	logger.Info("Installing dependencies...\n")
	installArgs := append([]string{"install", "-D"}, s.Layout.DevDependencies...)
	if err := s.Runner.Run(ctx, projectDir, cfg.PackageManager, installArgs...); err != nil {
		return nil, err
	}

	if err := s.Runner.Run(ctx, projectDir, cfg.PackageRunner, s.Layout.CSSInit...); err != nil {
		return nil, err
	}

	files, err := RenderFS(s.Files, ".", projectDir)
	if err != nil {
		return nil, fmt.Errorf("writing template files: %w", err)
	}
	logger.Debug("[DEBUG] Wrote %d template files\n", len(files))

	if err := MakeDirectories(projectDir, s.Layout.Directories); err != nil {
		return nil, fmt.Errorf("creating directories: %w", err)
	}

	manifest := filepath.Join(projectDir, manifestFile)
	for _, dep := range s.Layout.Dependencies {
		if err := PatchManifest(manifest, dep.Name, dep.Version); err != nil {
			return nil, fmt.Errorf("adding %s to %s: %w", dep.Name, manifestFile, err)
		}
	}

	removed := TryDelete(projectDir, s.Layout.Cleanup)

	logger.Info("Installing project dependencies...\n")
	if err := s.Runner.Run(ctx, projectDir, cfg.PackageManager, "install"); err != nil {
		return nil, err
	}

	return &Result{
		ProjectDir:  projectDir,
		Files:       files,
		Directories: s.Layout.Directories,
		Removed:     removed,
	}, nil
}
