package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/pkindex/internal/logging"
)

// ProjectDirName is the project-local configuration directory.
const ProjectDirName = ".pkindex"

// resolvedProjectDir holds the resolved project directory path for use
// by other config functions during the lifetime of a CLI invocation.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory for use by other config functions.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .pkindex directory path.
// It checks (in order):
//  1. PKINDEX_PROJECT_DIR env var
//  2. the nearest ancestor of startDir holding a .pkindex directory
//
// Returns the absolute path to the .pkindex directory, or "" when none is
// found. The global config directory never counts as a project. The
// directory is not created.
func ResolveProjectDir(ctx context.Context, startDir string) string {
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	globalDir, _ := GetConfigDir()

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		info, statErr := os.Stat(candidate)
		if statErr == nil && info.IsDir() && candidate != globalDir {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadOptions selects the overlays applied by Resolve.
type LoadOptions struct {
	// ProjectDir is a .pkindex directory; its config.yaml is merged when present.
	ProjectDir string
	// ExplicitPath is a --config file. It must exist.
	ExplicitPath string
}

// Resolve builds the effective Config: defaults, global file, project
// overlay, explicit overlay, then environment. A broken project overlay is
// logged and skipped; a missing or broken explicit overlay is an error.
func Resolve(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg := Default()
	if err := cfg.Load(); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().Ctx(ctx).
			Str("component", "config").
			Err(err).
			Msg("failed to load global config, using defaults")
	}

	if opts.ProjectDir != "" {
		overlayPath := filepath.Join(opts.ProjectDir, ConfigFileName)
		if _, err := os.Stat(overlayPath); err == nil {
			if mergeErr := ShallowMergeYAML(cfg, overlayPath); mergeErr != nil {
				logger := logging.FromContext(ctx)
				logger.Warn().Ctx(ctx).
					Str("component", "config").
					Str("operation", "merge_project_config").
					Err(mergeErr).
					Str("overlay_path", overlayPath).
					Msg("failed to merge project config, skipping")
			}
		}
	}

	if opts.ExplicitPath != "" {
		if err := ShallowMergeYAML(cfg, opts.ExplicitPath); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// toAbsProjectDir converts dir to an absolute path and appends ".pkindex"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == ProjectDirName {
		return abs
	}

	return filepath.Join(abs, ProjectDirName)
}

// ErrExists is returned when init would overwrite an existing file.
const ErrExists = constError("configuration file already exists, use --force to overwrite")

// InitFile writes the defaults to path. Without force an existing file is
// left untouched and ErrExists returned.
func InitFile(path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return ErrExists
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	cfg := Default()
	cfg.SetConfigPath(path)
	return cfg.Save()
}
