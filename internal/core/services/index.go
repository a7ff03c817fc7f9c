package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/core/ports/driving"
	"github.com/custodia-labs/graphidx/internal/logger"
)

// Ensure IndexService implements the interfaces.
var (
	_ driving.Indexer         = (*IndexService)(nil)
	_ driving.PipelineCatalog = (*IndexService)(nil)
)

// IndexService builds the knowledge index by running a registered pipeline
// against storages created from configuration.
type IndexService struct {
	storages  driven.StorageFactory
	caches    driven.CacheFactory
	workflows *WorkflowRegistry
	pipelines *PipelineRegistry
}

// NewIndexService creates an index service.
func NewIndexService(
	storages driven.StorageFactory,
	caches driven.CacheFactory,
	workflows *WorkflowRegistry,
	pipelines *PipelineRegistry,
) *IndexService {
	return &IndexService{
		storages:  storages,
		caches:    caches,
		workflows: workflows,
		pipelines: pipelines,
	}
}

// Pipelines returns the registered pipelines sorted by name.
func (s *IndexService) Pipelines() []driving.PipelineInfo {
	return s.pipelines.Pipelines()
}

// Workflows returns the registered workflow names sorted.
func (s *IndexService) Workflows() []string {
	return s.workflows.Names()
}

// BuildIndex runs the pipeline named by opts.Method, or cfg.Workflows when set.
//
// Pipeline and storage configuration errors are returned before any I/O.
// The previous run state is read from the output storage before the run, and
// the run state and statistics are written back once the run reaches any
// terminal state.
func (s *IndexService) BuildIndex(
	ctx context.Context,
	cfg *domain.Config,
	opts driving.BuildOptions,
) (*driving.BuildReport, error) {
	pipeline, err := s.resolvePipeline(cfg, opts.Method)
	if err != nil {
		return nil, err
	}

	input, output, previous, err := s.createStorages(cfg)
	if err != nil {
		return nil, err
	}
	defer closeAll(input, output, previous)

	cache, err := s.caches.Create(cfg.Cache)
	if err != nil {
		return nil, err
	}

	state, err := loadState(ctx, output)
	if err != nil {
		return nil, err
	}

	rc := CreateRunContext(RunContextParams{
		InputStorage:    input,
		OutputStorage:   output,
		PreviousStorage: previous,
		Cache:           cache,
		Callbacks:       opts.Callbacks,
		State:           state,
	})

	logger.Info("running pipeline %s (run %s)", pipelineLabel(cfg, opts.Method), rc.RunID)
	runner := NewRunner(pipeline)
	results, runErr := runner.Run(ctx, cfg, rc)

	var merr *multierror.Error
	if runErr != nil {
		merr = multierror.Append(merr, runErr)
	}
	// Persist even when ctx was cancelled so the next run sees this run's state.
	persistCtx := context.WithoutCancel(ctx)
	if err := writeJSON(persistCtx, output, domain.StateKey, rc.State); err != nil {
		merr = multierror.Append(merr, err)
	}
	if err := writeJSON(persistCtx, output, domain.StatsKey, rc.Stats); err != nil {
		merr = multierror.Append(merr, err)
	}

	report := &driving.BuildReport{
		RunID:   rc.RunID,
		State:   runner.State(),
		Results: results,
		Stats:   rc.Stats,
	}
	if merr == nil {
		return report, nil
	}
	if len(merr.Errors) == 1 {
		return report, merr.Errors[0]
	}
	return report, merr
}

func (s *IndexService) resolvePipeline(cfg *domain.Config, method string) (*Pipeline, error) {
	if len(cfg.Workflows) > 0 {
		return s.pipelines.Resolve(cfg.Workflows)
	}
	if method == "" {
		method = domain.DefaultIndexingMethod
	}
	return s.pipelines.CreatePipeline(method)
}

func pipelineLabel(cfg *domain.Config, method string) string {
	if len(cfg.Workflows) > 0 {
		return "custom"
	}
	if method == "" {
		return domain.DefaultIndexingMethod
	}
	return method
}

// createStorages builds the input, output and previous-run storages.
// Without an update output configured the previous role aliases the output.
func (s *IndexService) createStorages(cfg *domain.Config) (input, output, previous driven.Storage, err error) {
	input, err = s.storages.Create(cfg.Input.Storage.Type.String(), cfg.Input.Storage.Options())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("input storage: %w", err)
	}
	output, err = s.storages.Create(cfg.Output.Type.String(), cfg.Output.Options())
	if err != nil {
		closeAll(input)
		return nil, nil, nil, fmt.Errorf("output storage: %w", err)
	}
	if cfg.UpdateOutput.Type == "" {
		return input, output, output, nil
	}
	previous, err = s.storages.Create(cfg.UpdateOutput.Type.String(), cfg.UpdateOutput.Options())
	if err != nil {
		closeAll(input, output)
		return nil, nil, nil, fmt.Errorf("previous storage: %w", err)
	}
	return input, output, previous, nil
}

// closeAll closes each distinct storage that holds resources.
func closeAll(storages ...driven.Storage) {
	seen := make(map[driven.Storage]bool)
	for _, st := range storages {
		if st == nil || seen[st] {
			continue
		}
		seen[st] = true
		if c, ok := st.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Warn("closing storage: %v", err)
			}
		}
	}
}

// loadState reads the previous run state. A missing key yields an empty state.
func loadState(ctx context.Context, output driven.Storage) (domain.RunState, error) {
	data, err := output.Get(ctx, domain.StateKey)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.RunState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", domain.StateKey, err)
	}

	state := domain.RunState{}
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Error("error loading run state from storage: %s: %v", domain.StateKey, err)
		return nil, fmt.Errorf("decoding %s: %w", domain.StateKey, err)
	}
	return state, nil
}

func writeJSON(ctx context.Context, storage driven.Storage, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := storage.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
