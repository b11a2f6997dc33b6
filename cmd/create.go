package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prithwish249/create-vite-tailwind/core"
	"github.com/prithwish249/create-vite-tailwind/internal/config"
	"github.com/prithwish249/create-vite-tailwind/internal/templates"
)

const defaultProjectName = "my-vite-tailwind-app"

type createOptions struct {
	debug      bool
	configPath string
}

// resolveProjectName returns the first argument verbatim, or the default name.
func resolveProjectName(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return defaultProjectName
}

func runCreate(ctx context.Context, out io.Writer, runner core.Runner, opts createOptions, args []string) error {
	name := resolveProjectName(args)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	layout, err := templates.Load()
	if err != nil {
		return err
	}
	files, err := layout.Files()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	s := &core.Scaffolder{
		Runner: runner,
		Config: cfg,
		Layout: layout,
		Files:  files,
	}
	result, err := s.Create(ctx, cwd, name)
	if err != nil {
		return err
	}

	printSummary(out, name, cfg, result)
	return nil
}

func printSummary(out io.Writer, name string, cfg *config.Config, result *core.Result) {
	fmt.Fprintln(out, "\nProject setup complete! Your project structure is ready.")
	fmt.Fprintln(out, "\nCreated directories:")
	for _, dir := range result.Directories {
		fmt.Fprintf(out, "- %s\n", dir)
	}
	fmt.Fprintln(out, "\nTo start development:")
	fmt.Fprintf(out, "cd %s && %s run dev\n", name, cfg.PackageManager)
}
