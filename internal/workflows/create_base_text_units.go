package workflows

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/logger"
	"github.com/custodia-labs/graphidx/internal/tables"
)

// CreateBaseTextUnitsName is the registered name of the chunking workflow.
const CreateBaseTextUnitsName = "create_base_text_units"

// reservedGroupColumns are produced by chunking and cannot be grouped on.
var reservedGroupColumns = []string{
	domain.ColumnNameText,
	domain.ColumnNameDocumentIDs,
	domain.ColumnNameNTokens,
}

// NewCreateBaseTextUnits returns the chunking workflow. It reads the documents
// table from the output storage and writes the text_units table.
// The splitter is selected from splitters by cfg.Chunks.Strategy on every run.
func NewCreateBaseTextUnits(splitters driven.SplitterFactory) driven.WorkflowFunc {
	return func(ctx context.Context, cfg *domain.Config, rc *driven.RunContext) (domain.WorkflowOutput, error) {
		log := logger.For(CreateBaseTextUnitsName)

		documents, err := tables.Load(ctx, domain.TableDocuments, rc.OutputStorage)
		if err != nil {
			return domain.WorkflowOutput{}, err
		}

		splitter, err := splitters.Build(cfg.Chunks)
		if err != nil {
			return domain.WorkflowOutput{}, err
		}
		log.Debug("splitting %d documents with %s", documents.Len(), splitter.Name())

		output, err := CreateBaseTextUnits(ctx, documents, cfg.Chunks, splitter, callbacksOf(rc))
		if err != nil {
			return domain.WorkflowOutput{}, err
		}

		if err := tables.Write(ctx, output, domain.TableTextUnits, rc.OutputStorage); err != nil {
			return domain.WorkflowOutput{}, err
		}

		rc.Stats.NumTextUnits = output.Len()
		state := rc.State.Namespaced(CreateBaseTextUnitsName)
		state["num_text_units"] = output.Len()
		state["strategy"] = splitter.Name()

		log.Info("wrote %d text units", output.Len())
		return domain.WorkflowOutput{Result: output}, nil
	}
}

// chunkGroup is the set of documents sharing one value of the grouping columns.
type chunkGroup struct {
	key      []any
	inputs   []domain.TextInput
	metadata map[string]any
}

// CreateBaseTextUnits splits documents into text units.
//
// Documents are sorted by id, then grouped by cfg.GroupByColumns in order of
// first appearance; no grouping columns places every document in one group.
// Each group's (id, text) pairs are split once, and each resulting chunk
// becomes a row carrying the group's key values. A row's id is the SHA-512 of
// its (document_ids, text, n_tokens) content. Rows with empty text are dropped.
//
// Output columns are the grouping columns, then text, id (unless grouped on),
// document_ids and n_tokens. Progress is reported once per group.
func CreateBaseTextUnits(
	ctx context.Context,
	documents *domain.Table,
	cfg domain.ChunkingConfig,
	splitter driven.TextSplitter,
	cb driven.WorkflowCallbacks,
) (*domain.Table, error) {
	if err := validateDocuments(documents, cfg.GroupByColumns); err != nil {
		return nil, err
	}

	groups := groupDocuments(documents, cfg.GroupByColumns)
	output := domain.NewTable(textUnitColumns(documents, cfg.GroupByColumns)...)
	idGrouped := slices.Contains(cfg.GroupByColumns, domain.ColumnNameID)

	log := logger.For(CreateBaseTextUnitsName)
	log.Info("starting chunking process for %d groups", len(groups))

	for i, g := range groups {
		chunks, err := splitter.Split(ctx, g.inputs)
		if err != nil {
			return nil, fmt.Errorf("splitting group %d: %w", i, err)
		}

		prefix := ""
		prefixTokens := 0
		if cfg.PrependMetadata && len(g.metadata) > 0 {
			prefix = metadataPrefix(g.metadata)
			prefixTokens = splitter.CountTokens(prefix)
		}

		for _, c := range chunks {
			if c.Text == "" {
				continue
			}
			text := prefix + c.Text
			nTokens := c.NTokens + prefixTokens
			docIDs := c.DocumentIDs
			if docIDs == nil {
				docIDs = []string{}
			}

			id, err := TextUnitID(docIDs, text, nTokens)
			if err != nil {
				return nil, err
			}
			if err := output.Append(textUnitRow(g.key, cfg.GroupByColumns, idGrouped, id, docIDs, text, nTokens)...); err != nil {
				return nil, err
			}
		}

		cb.Progress(driven.Progress{Description: "chunk groups", Completed: i + 1, Total: len(groups)})
		log.Debug("chunker progress: %d/%d", i+1, len(groups))
	}

	return output, nil
}

func validateDocuments(documents *domain.Table, groupBy []string) error {
	for _, required := range []string{domain.ColumnNameID, domain.ColumnNameText} {
		if !documents.HasColumn(required) {
			return fmt.Errorf("%w: documents table has no %s column", domain.ErrInvalidInput, required)
		}
	}
	if typ := documents.Columns[documents.ColumnIndex(domain.ColumnNameID)].Type; typ != domain.ColumnString && typ != domain.ColumnInt {
		return fmt.Errorf("%w: documents id column must be string or int, got %s", domain.ErrInvalidInput, typ)
	}
	if typ := documents.Columns[documents.ColumnIndex(domain.ColumnNameText)].Type; typ != domain.ColumnString {
		return fmt.Errorf("%w: documents text column must be string, got %s", domain.ErrInvalidInput, typ)
	}
	for _, col := range groupBy {
		if slices.Contains(reservedGroupColumns, col) {
			return fmt.Errorf("%w: cannot group text units by %s", domain.ErrInvalidConfig, col)
		}
		if !documents.HasColumn(col) {
			return fmt.Errorf("%w: group column %s not in documents table", domain.ErrInvalidConfig, col)
		}
	}
	return nil
}

// groupDocuments sorts rows by id and groups them in order of first appearance.
func groupDocuments(documents *domain.Table, groupBy []string) []*chunkGroup {
	order := make([]int, documents.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lessDocumentID(documents.Value(order[a], domain.ColumnNameID), documents.Value(order[b], domain.ColumnNameID))
	})

	hasMetadata := documents.HasColumn(domain.ColumnNameMetadata)
	index := make(map[string]*chunkGroup)
	var groups []*chunkGroup

	for _, row := range order {
		key := make([]any, len(groupBy))
		for j, col := range groupBy {
			key[j] = documents.Value(row, col)
		}
		encoded, err := json.Marshal(key)
		if err != nil {
			encoded = fmt.Appendf(nil, "%v", key)
		}

		g, ok := index[string(encoded)]
		if !ok {
			g = &chunkGroup{key: key}
			index[string(encoded)] = g
			groups = append(groups, g)
		}
		g.inputs = append(g.inputs, domain.TextInput{
			DocumentID: documentID(documents.Value(row, domain.ColumnNameID)),
			Text:       documents.StringValue(row, domain.ColumnNameText),
		})
		if hasMetadata && g.metadata == nil {
			if m, ok := documents.Value(row, domain.ColumnNameMetadata).(map[string]any); ok {
				g.metadata = m
			}
		}
	}
	return groups
}

// documentID renders a supplied string or integer key as text.
func documentID(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// lessDocumentID orders integer keys numerically and everything else by text.
func lessDocumentID(a, b any) bool {
	x, xok := integerID(a)
	y, yok := integerID(b)
	if xok && yok {
		return x < y
	}
	return documentID(a) < documentID(b)
}

func integerID(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

func textUnitColumns(documents *domain.Table, groupBy []string) []domain.Column {
	columns := make([]domain.Column, 0, len(groupBy)+4)
	for _, col := range groupBy {
		columns = append(columns, documents.Columns[documents.ColumnIndex(col)])
	}
	columns = append(columns, domain.Column{Name: domain.ColumnNameText, Type: domain.ColumnString})
	if !slices.Contains(groupBy, domain.ColumnNameID) {
		columns = append(columns, domain.Column{Name: domain.ColumnNameID, Type: domain.ColumnString})
	}
	return append(columns,
		domain.Column{Name: domain.ColumnNameDocumentIDs, Type: domain.ColumnStringList},
		domain.Column{Name: domain.ColumnNameNTokens, Type: domain.ColumnInt},
	)
}

func textUnitRow(key []any, groupBy []string, idGrouped bool, id string, docIDs []string, text string, nTokens int) []any {
	row := make([]any, 0, len(key)+4)
	for j, col := range groupBy {
		if col == domain.ColumnNameID {
			row = append(row, id)
			continue
		}
		row = append(row, key[j])
	}
	row = append(row, text)
	if !idGrouped {
		row = append(row, id)
	}
	return append(row, docIDs, int64(nTokens))
}

// TextUnitID returns the content-derived id of a text unit: the hex SHA-512
// of the JSON array [document_ids, text, n_tokens].
func TextUnitID(documentIDs []string, text string, nTokens int) (string, error) {
	data, err := json.Marshal([]any{documentIDs, text, nTokens})
	if err != nil {
		return "", fmt.Errorf("encoding text unit: %w", err)
	}
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:]), nil
}

// metadataPrefix renders metadata as sorted "key: value" lines.
func metadataPrefix(metadata map[string]any) string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, metadata[k])
	}
	return b.String()
}
