package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver finds data files next to the binary, in the working directory or in the
// config directory.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a resolver for the running executable.
func NewPathResolver(configDir string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		configDir:     configDir,
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, configDir)
	return pr, nil
}

// Resolve returns the first existing location of name. Absolute paths are returned unchanged.
// When nothing exists, the config directory location is returned so the file can be created there.
func (pr *PathResolver) Resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}

	var candidates []string
	if pr.configDir != "" {
		candidates = append(candidates, filepath.Join(pr.configDir, name))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, name),
		filepath.Join(pr.executableDir, "data", name),
	)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, name), filepath.Join(cwd, "data", name))
	}

	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Resolved %s to %s", name, path)
			return path
		}
	}
	return candidates[0]
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}
