package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// PathResolver locates word lists and other data files given as relative
// paths, trying the working directory, the executable directory and the
// config directory in that order.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a resolver rooted at the running executable.
func NewPathResolver(configDir string) (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", execDir, configDir)
	return &PathResolver{executableDir: execDir, configDir: configDir}, nil
}

// Candidates lists the locations tried for path.
func (pr *PathResolver) Candidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, path))
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, path))
	if pr.configDir != "" {
		candidates = append(candidates, filepath.Join(pr.configDir, path))
	}
	return candidates
}

// ResolveFile returns the first candidate that exists and is a regular file.
func (pr *PathResolver) ResolveFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("resolve file: empty path")
	}
	for _, candidate := range pr.Candidates(path) {
		if stat, err := os.Stat(candidate); err == nil && stat.Mode().IsRegular() {
			log.Debugf("Resolved %s to %s", path, candidate)
			return candidate, nil
		}
		log.Debugf("Candidate not found: %s", candidate)
	}
	return "", fmt.Errorf("resolve file %s: %w", path, os.ErrNotExist)
}

// RuntimeInfo returns debug information about the current environment.
func (pr *PathResolver) RuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	info := map[string]string{
		"executable_dir": pr.executableDir,
		"config_dir":     pr.configDir,
		"current_dir":    cwd,
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
	}
	for _, envVar := range []string{"HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}
