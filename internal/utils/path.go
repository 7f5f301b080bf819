package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver locates corpus files relative to the places symserve is
// usually run from
type PathResolver struct {
	executableDir string
	workDir       string
	dataDir       string
}

// NewPathResolver inspects the running binary and the environment
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not determine working directory: %v", err)
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		workDir:       cwd,
		dataDir:       dataDir(),
	}
	log.Debugf("PathResolver initialized: execDir=%s, cwd=%s, dataDir=%s", pr.executableDir, pr.workDir, pr.dataDir)
	return pr, nil
}

// dataDir returns the per-user data directory for the platform
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "symserve")
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "symserve")
	case "windows":
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return filepath.Join(appData, "symserve")
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "symserve")
		}
	}
	return filepath.Join(home, ".local", "share", "symserve")
}

// Candidates lists the locations tried for name, in order
func (pr *PathResolver) Candidates(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	var paths []string
	if pr.workDir != "" {
		paths = append(paths, filepath.Join(pr.workDir, name))
	}
	return append(paths,
		filepath.Join(pr.executableDir, name),
		filepath.Join(pr.executableDir, "data", name),
		filepath.Join(pr.dataDir, name),
	)
}

// ResolveDataFile returns the first existing candidate for name
func (pr *PathResolver) ResolveDataFile(name string) (string, error) {
	for _, path := range pr.Candidates(name) {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Found corpus file: %s", path)
			return path, nil
		}
		log.Debugf("Corpus candidate not found: %s", path)
	}
	return "", fmt.Errorf("corpus file %q not found: %w", name, os.ErrNotExist)
}

// GetDataDir returns the per-user data directory
func (pr *PathResolver) GetDataDir() string {
	return pr.dataDir
}
