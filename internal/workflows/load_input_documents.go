package workflows

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/logger"
	"github.com/custodia-labs/graphidx/internal/tables"
)

// LoadInputDocumentsName is the registered name of the input loading workflow.
const LoadInputDocumentsName = "load_input_documents"

// maxConcurrentLoads bounds concurrent reads from the input storage.
const maxConcurrentLoads = 8

// LoadInputDocuments reads every input file matching cfg.Input.FilePattern as
// plain text and writes the documents table to the output storage.
func LoadInputDocuments(ctx context.Context, cfg *domain.Config, rc *driven.RunContext) (domain.WorkflowOutput, error) {
	return NewLoadInputDocuments(nil)(ctx, cfg, rc)
}

// NewLoadInputDocuments returns the input loading workflow. Each file is
// converted to text by the normaliser registered for its extension.
// A nil lookup reads every file as plain text.
func NewLoadInputDocuments(normalisers driven.NormaliserLookup) driven.WorkflowFunc {
	return func(ctx context.Context, cfg *domain.Config, rc *driven.RunContext) (domain.WorkflowOutput, error) {
		return loadInputDocuments(ctx, cfg, rc, normalisers)
	}
}

func loadInputDocuments(
	ctx context.Context,
	cfg *domain.Config,
	rc *driven.RunContext,
	normalisers driven.NormaliserLookup,
) (domain.WorkflowOutput, error) {
	log := logger.For(LoadInputDocumentsName)

	docs, err := loadDocuments(ctx, cfg.Input, rc, normalisers)
	if err != nil {
		return domain.WorkflowOutput{}, err
	}

	table := domain.NewTable(domain.DocumentColumns()...)
	for _, d := range docs {
		if err := table.Append(d.Row()...); err != nil {
			return domain.WorkflowOutput{}, err
		}
	}

	log.Info("final # of rows loaded: %d", table.Len())
	rc.Stats.NumDocuments = table.Len()

	if err := tables.Write(ctx, table, domain.TableDocuments, rc.OutputStorage); err != nil {
		return domain.WorkflowOutput{}, err
	}
	return domain.WorkflowOutput{Result: table}, nil
}

// loadDocuments reads matching input keys concurrently. Documents are
// returned in key order regardless of completion order.
func loadDocuments(
	ctx context.Context,
	cfg domain.InputConfig,
	rc *driven.RunContext,
	normalisers driven.NormaliserLookup,
) ([]domain.Document, error) {
	if enc := strings.ToLower(cfg.Encoding); enc != "" && enc != "utf-8" && enc != "utf8" {
		return nil, fmt.Errorf("%w: unsupported input encoding %q", domain.ErrInvalidConfig, cfg.Encoding)
	}

	pattern := cfg.FilePattern
	if pattern == "" {
		pattern = domain.DefaultInputPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: file pattern %q: %w", domain.ErrInvalidConfig, pattern, err)
	}

	keys, err := rc.InputStorage.Keys(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing input: %w", err)
	}
	var matched []string
	for _, k := range keys {
		if re.MatchString(k) {
			matched = append(matched, k)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("no input files matching %q: %w", pattern, domain.ErrNotFound)
	}
	logger.Info("found %d input files", len(matched))

	runStart := rc.Stats.StartedAt.UTC().Format(time.RFC3339)
	dater, _ := rc.InputStorage.(driven.CreationDater)
	docs := make([]domain.Document, len(matched))

	cb := callbacksOf(rc)
	var mu sync.Mutex
	done := 0
	sem := semaphore.NewWeighted(maxConcurrentLoads)
	g, gctx := errgroup.WithContext(ctx)

	for i, key := range matched {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)

			data, err := rc.InputStorage.Get(gctx, key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", key, err)
			}
			if !utf8.Valid(data) {
				return fmt.Errorf("%w: %s is not valid utf-8", domain.ErrInvalidInput, key)
			}
			result := driven.NormaliseResult{Text: string(data)}
			if normalisers != nil {
				n := normalisers.For(key)
				if result, err = n.Normalise(key, data); err != nil {
					return fmt.Errorf("normalising %s as %s: %w", key, n.Name(), err)
				}
			}
			createdAt := runStart
			if dater != nil {
				t, err := dater.CreationDate(gctx, key)
				if err != nil {
					return fmt.Errorf("dating %s: %w", key, err)
				}
				createdAt = t.UTC().Format(time.RFC3339)
			}
			docs[i] = domain.Document{
				ID:           hashText(result.Text),
				Text:         result.Text,
				Title:        key,
				CreationDate: createdAt,
				Metadata:     result.Metadata,
			}

			mu.Lock()
			done++
			cb.Progress(driven.Progress{Description: "input files", Completed: done, Total: len(matched)})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Acquire only fails once gctx is done, which Wait reports unless the
	// parent ctx was cancelled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func hashText(text string) string {
	sum := sha512.Sum512([]byte(text))
	return hex.EncodeToString(sum[:])
}
