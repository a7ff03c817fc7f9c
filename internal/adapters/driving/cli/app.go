package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/custodia-labs/graphidx/internal/adapters/driven/cache"
	"github.com/custodia-labs/graphidx/internal/adapters/driven/config/file"
	"github.com/custodia-labs/graphidx/internal/adapters/driven/storage"
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/services"
	"github.com/custodia-labs/graphidx/internal/logger"
	"github.com/custodia-labs/graphidx/internal/normalisers"
	"github.com/custodia-labs/graphidx/internal/splitters"
	"github.com/custodia-labs/graphidx/internal/workflows"
)

// app holds the registries and services one command invocation works with.
type app struct {
	storages  *storage.Registry
	splitters *splitters.Registry
	index     *services.IndexService
}

// newApp wires the built-in storages, splitters, workflows and pipelines.
func newApp() *app {
	storages := storage.NewDefaultRegistry()
	splitterRegistry := splitters.NewDefaultRegistry()

	workflowRegistry := services.NewWorkflowRegistry()
	pipelineRegistry := services.NewPipelineRegistry(workflowRegistry)
	workflows.RegisterDefaults(workflowRegistry, pipelineRegistry, splitterRegistry, normalisers.NewDefaultRegistry())

	return &app{
		storages:  storages,
		splitters: splitterRegistry,
		index: services.NewIndexService(
			storages,
			cache.NewFactory(storages),
			workflowRegistry,
			pipelineRegistry,
		),
	}
}

// loadConfig reads the config named by --config, else the first settings file
// found in --root, else the defaults for --root.
func (a *app) loadConfig() (*domain.Config, error) {
	root := viper.GetString(keyRoot)

	path := viper.GetString(keyConfig)
	if path == "" {
		found, ok := file.Find(root)
		if !ok {
			logger.Debug("no config file in %s, using defaults", root)
			cfg := file.Default(root)
			return cfg, a.check(cfg)
		}
		path = found
	}

	logger.Debug("using config file: %s", path)
	cfg, err := file.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, a.check(cfg)
}

// check rejects backends and strategies that are not registered.
func (a *app) check(cfg *domain.Config) error {
	for _, t := range []domain.StorageType{cfg.Input.Storage.Type, cfg.Output.Type, cfg.UpdateOutput.Type} {
		if t != "" && !a.storages.Supports(t.String()) {
			return fmt.Errorf("%w: %q", domain.ErrUnknownStorageType, t)
		}
	}
	if !a.splitters.Has(cfg.Chunks.Strategy) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, cfg.Chunks.Strategy)
	}
	return nil
}
