package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/custodia-labs/graphidx/internal/core/domain"
)

// Candidate file names searched by Find, in priority order.
var configNames = []string{"settings.toml", "settings.yaml", "settings.yml"}

// Default returns the default configuration rooted at root.
// Base directories are resolved against root.
func Default(root string) *domain.Config {
	cfg := &domain.Config{
		RootDir: root,
		Input: domain.InputConfig{
			Storage: domain.StorageConfig{
				Type:    domain.StorageFile,
				BaseDir: domain.DefaultInputBaseDir,
			},
			FilePattern: domain.DefaultInputPattern,
			Encoding:    domain.DefaultInputEncoding,
		},
		Output: domain.StorageConfig{
			Type:    domain.StorageFile,
			BaseDir: domain.DefaultOutputBaseDir,
		},
		Cache: domain.CacheConfig{
			Type:    domain.CacheFile,
			BaseDir: domain.DefaultCacheBaseDir,
		},
		Chunks: domain.ChunkingConfig{
			Size:           domain.DefaultChunkSize,
			Overlap:        domain.DefaultChunkOverlap,
			GroupByColumns: []string{domain.ColumnNameID},
			Strategy:       domain.ChunkStrategyTokens,
			EncodingModel:  domain.DefaultEncodingModel,
		},
	}
	Resolve(cfg)
	return cfg
}

// Find returns the first configuration file present in root.
func Find(root string) (string, bool) {
	for _, name := range configNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads the configuration file at path over the defaults, resolves base
// directories and validates the result.
// When the file sets no root_dir, the directory containing the file is used.
// Unknown keys are rejected.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	root := filepath.Dir(path)
	// Base directories stay relative until the root is known.
	cfg := Default("")

	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidConfig, path, err)
	}
	if cfg.RootDir == "" {
		cfg.RootDir = root
	} else if !filepath.IsAbs(cfg.RootDir) {
		cfg.RootDir = filepath.Join(root, cfg.RootDir)
	}

	Resolve(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *domain.Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err := dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			// Empty document
			return nil
		}
		return err
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// Resolve makes relative base directories absolute against cfg.RootDir.
// Storage types without a base directory are left untouched.
func Resolve(cfg *domain.Config) {
	resolve := func(dir string) string {
		if dir == "" || filepath.IsAbs(dir) || cfg.RootDir == "" {
			return dir
		}
		return filepath.Join(cfg.RootDir, dir)
	}
	cfg.Input.Storage.BaseDir = resolve(cfg.Input.Storage.BaseDir)
	cfg.Output.BaseDir = resolve(cfg.Output.BaseDir)
	cfg.UpdateOutput.BaseDir = resolve(cfg.UpdateOutput.BaseDir)
	cfg.Cache.BaseDir = resolve(cfg.Cache.BaseDir)
}

// Validate checks cfg and reports every problem found.
func Validate(cfg *domain.Config) error {
	var merr *multierror.Error

	if cfg.Input.Storage.Type == "" {
		merr = multierror.Append(merr, errors.New("input.storage.type is required"))
	}
	if cfg.Output.Type == "" {
		merr = multierror.Append(merr, errors.New("output.type is required"))
	}
	if _, err := regexp.Compile(cfg.Input.FilePattern); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("input.file_pattern: %w", err))
	}
	if cfg.Chunks.Size <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("chunks.size must be positive, got %d", cfg.Chunks.Size))
	}
	if cfg.Chunks.Overlap < 0 || cfg.Chunks.Overlap >= cfg.Chunks.Size {
		merr = multierror.Append(merr, fmt.Errorf("chunks.overlap must be in [0, %d), got %d", cfg.Chunks.Size, cfg.Chunks.Overlap))
	}
	if cfg.Chunks.Strategy == "" {
		merr = multierror.Append(merr, errors.New("chunks.strategy is required"))
	}
	for i, name := range cfg.Workflows {
		if strings.TrimSpace(name) == "" {
			merr = multierror.Append(merr, fmt.Errorf("workflows[%d] is empty", i))
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}

// Save writes cfg to path as TOML or YAML according to its extension.
// Existing files are not overwritten unless force is set.
func Save(path string, cfg *domain.Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = toml.Marshal(cfg)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("%w: unsupported config format %q", domain.ErrInvalidConfig, filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
