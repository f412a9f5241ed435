package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/rofergon/Spirit-Criptogame/internal/texture"
)

// collectPNGs resolves a source path to the list of PNG files to
// process: the path itself when it is a file, or every .png directly
// inside it when it is a directory.
func collectPNGs(source string) ([]string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("source not found: %w", err)
	}
	if !info.IsDir() {
		return []string{source}, nil
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			files = append(files, filepath.Join(source, e.Name()))
		}
	}
	return files, nil
}

// loadBuffer reads and decodes an image file into a texture buffer.
func loadBuffer(path string) (*texture.Buffer, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return texture.FromImage(img), nil
}

// saveBuffer encodes a buffer as PNG at the given path, creating the
// parent directory if needed.
func saveBuffer(buf *texture.Buffer, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(buf.Image(), path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// baseName returns the file name without directory or extension.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// backupOnce writes a "<name>_backup.png" copy of path next to it,
// unless one already exists from an earlier run.
func backupOnce(path string) error {
	backupPath := filepath.Join(filepath.Dir(path), baseName(path)+"_backup.png")
	if _, err := os.Stat(backupPath); err == nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read original for backup: %w", err)
	}
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// overwriteInPlace performs the destructive write contract: back up
// the original first, then overwrite it with the transformed buffer.
func overwriteInPlace(buf *texture.Buffer, path string) error {
	if err := backupOnce(path); err != nil {
		return err
	}
	return saveBuffer(buf, path)
}
