package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the default configuration directory for
// patchfix. Uses XDG_CONFIG_HOME if set, otherwise falls back to
// ~/.config/patchfix.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "patchfix")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "patchfix")
}

// WriteFileAtomic writes data to path via a temp file in the same
// directory and a rename, so a crash mid-write never leaves a truncated
// file behind.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Backup copies the file at path to path+".orig", preserving its mode.
// Returns the backup path.
func Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stating %s: %w", path, err)
	}
	backup := path + ".orig"
	if err := WriteFileAtomic(backup, data, info.Mode().Perm()); err != nil {
		return "", err
	}
	return backup, nil
}
