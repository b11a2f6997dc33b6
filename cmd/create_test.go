package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prithwish249/create-vite-tailwind/core"
	"github.com/prithwish249/create-vite-tailwind/internal/logger"
)

type recordingRunner struct {
	commands   [][]string
	failCreate bool
}

func (r *recordingRunner) Run(_ context.Context, dir string, name string, args ...string) error {
	r.commands = append(r.commands, append([]string{name}, args...))
	if len(args) >= 3 && args[0] == "create" {
		if r.failCreate {
			return &core.CommandError{Dir: dir, Args: append([]string{name}, args...), Err: errors.New("exit status 1")}
		}
		return core.WriteFile(filepath.Join(dir, args[2]), "package.json", []byte(`{"name":"`+args[2]+`"}`))
	}
	return nil
}

func execute(t *testing.T, runner core.Runner, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(runner)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveProjectName(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args", args: nil, want: "my-vite-tailwind-app"},
		{name: "empty arg", args: []string{""}, want: "my-vite-tailwind-app"},
		{name: "plain name", args: []string{"demo"}, want: "demo"},
		{name: "unsanitized name kept", args: []string{"my app; rm -rf"}, want: "my app; rm -rf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveProjectName(tt.args))
		})
	}
}

func TestRootCommandNamedProject(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	runner := &recordingRunner{}
	out, err := execute(t, runner, "demo")
	require.NoError(t, err)

	assert.Equal(t, []string{"npm", "create", "vite@latest", "demo", "--template", "react"}, runner.commands[0])
	assert.Len(t, runner.commands, 4)

	project := filepath.Join(dir, "demo")
	for _, d := range []string{
		"src/components", "src/components/ui", "src/layouts", "src/pages", "src/hooks",
		"src/utils", "src/assets", "src/constants", "src/services", "src/contexts",
	} {
		assert.DirExists(t, filepath.Join(project, d))
	}
	for _, f := range []string{
		"tailwind.config.js", "src/index.css", "src/layouts/MainLayout.jsx",
		"src/pages/Home.jsx", "src/App.jsx", "src/main.jsx",
	} {
		assert.FileExists(t, filepath.Join(project, f))
	}

	manifest, err := os.ReadFile(filepath.Join(project, "package.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"demo","dependencies":{"react-router-dom":"^6.21.1"}}`, string(manifest))

	assert.Contains(t, out, "Project setup complete! Your project structure is ready.")
	assert.Contains(t, out, "\nCreated directories:\n- src/components\n- src/components/ui\n")
	assert.True(t, strings.HasSuffix(out, "To start development:\ncd demo && npm run dev\n"))
}

func TestRootCommandDefaultName(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	runner := &recordingRunner{}
	out, err := execute(t, runner)
	require.NoError(t, err)

	assert.Equal(t, "my-vite-tailwind-app", runner.commands[0][3])
	assert.DirExists(t, filepath.Join(dir, "my-vite-tailwind-app", "src", "contexts"))
	assert.Contains(t, out, "cd my-vite-tailwind-app && npm run dev")
}

func TestRootCommandGeneratorFailure(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	runner := &recordingRunner{failCreate: true}
	out, err := execute(t, runner, "demo")
	require.Error(t, err)

	var cmdErr *core.CommandError
	assert.True(t, errors.As(err, &cmdErr))
	assert.Len(t, runner.commands, 1)
	assert.NoDirExists(t, filepath.Join(dir, "demo"))
	assert.NotContains(t, out, "Project setup complete")
}

func TestRootCommandDebugFlag(t *testing.T) {
	var logs bytes.Buffer
	origOut, origNoColor := color.Output, color.NoColor
	color.Output = &logs
	color.NoColor = true
	t.Cleanup(func() {
		color.Output = origOut
		color.NoColor = origNoColor
		logger.Init(false)
	})

	chdir(t, t.TempDir())
	_, err := execute(t, &recordingRunner{}, "--debug", "demo")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "[DEBUG] Wrote 6 template files")

	logs.Reset()
	chdir(t, t.TempDir())
	_, err = execute(t, &recordingRunner{}, "demo")
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "[DEBUG]")
	assert.Contains(t, logs.String(), "Installing project dependencies...")
}

func TestRootCommandTooManyArgs(t *testing.T) {
	runner := &recordingRunner{}
	_, err := execute(t, runner, "one", "two")
	require.Error(t, err)
	assert.Empty(t, runner.commands)
}

func TestRootCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfgPath := filepath.Join(t.TempDir(), "tools.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("package_manager: pnpm\npackage_runner: pnpx\n"), 0o644))

	runner := &recordingRunner{}
	out, err := execute(t, runner, "--config", cfgPath, "demo")
	require.NoError(t, err)

	assert.Equal(t, []string{"pnpm", "create", "vite@latest", "demo", "--template", "react"}, runner.commands[0])
	assert.Equal(t, []string{"pnpx", "tailwindcss", "init", "-p"}, runner.commands[2])
	assert.Contains(t, out, "cd demo && pnpm run dev")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
