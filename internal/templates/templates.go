// Package templates holds the embedded project skeleton: the literal files written
// into a freshly generated Vite project and the layout describing directories,
// dependencies and cleanup targets.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

//go:embed layout.yaml files
var FS embed.FS

const layoutFile = "layout.yaml"

// Dependency is a runtime dependency merged into package.json.
type Dependency struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Layout describes everything the scaffolder does besides running the generator.
type Layout struct {
	Name            string       `yaml:"name"`
	Root            string       `yaml:"root"`             // template tree inside FS
	DevDependencies []string     `yaml:"dev_dependencies"` // passed to "install -D"
	CSSInit         []string     `yaml:"css_init"`         // arguments for the package runner
	Directories     []string     `yaml:"directories"`
	Dependencies    []Dependency `yaml:"dependencies"`
	Cleanup         []string     `yaml:"cleanup"`
}

// Load decodes and validates the embedded layout.
func Load() (*Layout, error) {
	data, err := FS.ReadFile(layoutFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", layoutFile, err)
	}
	return Parse(data)
}

// Parse decodes a layout document and validates it.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks that every path stays inside the project root and that
// every dependency version is a usable semver constraint.
func (l *Layout) Validate() error {
	if l.Root == "" {
		return fmt.Errorf("layout %q: root is required", l.Name)
	}
	if len(l.CSSInit) == 0 {
		return fmt.Errorf("layout %q: css_init is required", l.Name)
	}
	for _, dir := range l.Directories {
		if err := checkRelative(dir); err != nil {
			return fmt.Errorf("layout %q: directory: %w", l.Name, err)
		}
	}
	for _, file := range l.Cleanup {
		if err := checkRelative(file); err != nil {
			return fmt.Errorf("layout %q: cleanup: %w", l.Name, err)
		}
	}
	for _, dep := range l.Dependencies {
		if dep.Name == "" {
			return fmt.Errorf("layout %q: dependency without a name", l.Name)
		}
		if _, err := semver.NewConstraint(dep.Version); err != nil {
			return fmt.Errorf("layout %q: dependency %s: invalid version %q: %w", l.Name, dep.Name, dep.Version, err)
		}
	}
	return nil
}

// Files returns the template tree rooted at the layout's root.
func (l *Layout) Files() (fs.FS, error) {
	sub, err := fs.Sub(FS, l.Root)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", l.Root, err)
	}
	return sub, nil
}

// checkRelative rejects absolute paths and anything escaping the project root.
func checkRelative(p string) error {
	if p == "" || path.IsAbs(p) || path.Clean(p) != p || p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return fmt.Errorf("%q is not a clean relative path", p)
	}
	return nil
}
