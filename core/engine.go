package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/prithwish249/create-vite-tailwind/internal/logger"
)

// RenderFS copies every file below root in fsys to the same relative path
// under destRoot, replacing existing files. It returns the written paths in
// slash form, relative to destRoot.
func RenderFS(fsys fs.FS, root string, destRoot string) ([]string, error) {
	info, err := fs.Stat(fsys, root)
	if err != nil {
		return nil, err
	}

	var written []string
	if !info.IsDir() {
		name := path.Base(root)
		if err := renderFile(fsys, root, filepath.Join(destRoot, name)); err != nil {
			return nil, err
		}
		return []string{name}, nil
	}

	if err := renderDir(fsys, root, destRoot, ".", &written); err != nil {
		return written, err
	}
	return written, nil
}

func renderDir(fsys fs.FS, srcDir string, destDir string, rel string, written *[]string) error {
	entries, err := fs.ReadDir(fsys, srcDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := path.Join(srcDir, entry.Name())
		relPath := path.Join(rel, entry.Name())
		destPath := filepath.Join(destDir, entry.Name())

		if entry.IsDir() {
			if err := renderDir(fsys, srcPath, destPath, relPath, written); err != nil {
				return err
			}
			continue
		}

		if err := renderFile(fsys, srcPath, destPath); err != nil {
			return err
		}
		*written = append(*written, relPath)
	}

	return nil
}

func renderFile(fsys fs.FS, srcPath string, destPath string) error {
	content, err := fs.ReadFile(fsys, srcPath)
	if err != nil {
		return err
	}
	return writeFile(destPath, content)
}

// WriteFile creates or truncates base/rel and writes content to it verbatim.
// Missing parent directories are created.
func WriteFile(base string, rel string, content []byte) error {
	return writeFile(filepath.Join(base, filepath.FromSlash(rel)), content)
}

func writeFile(destPath string, content []byte) error {
	if err := mkdirAll(filepath.Dir(destPath)); err != nil {
		return err
	}

	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return wrapPermission(err, destPath)
	}

	if _, err := io.Copy(f, bytes.NewReader(content)); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", destPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", destPath, err)
	}
	return nil
}

// MakeDirectories creates each path under base, parents included. Existing
// directories are fine; anything else in the way is an error.
func MakeDirectories(base string, paths []string) error {
	for _, p := range paths {
		if err := mkdirAll(filepath.Join(base, filepath.FromSlash(p))); err != nil {
			return err
		}
	}
	return nil
}

// TryDelete removes each path under base and returns the ones actually
// removed. A failure on one path never stops the others.
func TryDelete(base string, paths []string) []string {
	var removed []string
	for _, p := range paths {
		target := filepath.Join(base, filepath.FromSlash(p))
		if err := os.Remove(target); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("[DEBUG] Skipping cleanup of %s: %v\n", p, err)
			} else {
				logger.Warn("[WARN] Could not remove %s: %v\n", p, err)
			}
			continue
		}
		removed = append(removed, p)
	}
	return removed
}

func mkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return wrapPermission(err, dir)
	}
	return nil
}
