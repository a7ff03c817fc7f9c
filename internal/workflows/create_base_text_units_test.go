package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graphidx/internal/callbacks"
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/splitters/tokens"
	"github.com/custodia-labs/graphidx/internal/tables"
)

type testDoc struct {
	id, text, author string
	metadata         map[string]any
}

func documentsTable(t *testing.T, docs ...testDoc) *domain.Table {
	t.Helper()
	table := domain.NewTable(
		domain.Column{Name: "id", Type: domain.ColumnString},
		domain.Column{Name: "text", Type: domain.ColumnString},
		domain.Column{Name: "author", Type: domain.ColumnString},
		domain.Column{Name: "metadata", Type: domain.ColumnJSON},
	)
	for _, d := range docs {
		var metadata any
		if d.metadata != nil {
			metadata = d.metadata
		}
		require.NoError(t, table.Append(d.id, d.text, d.author, metadata))
	}
	return table
}

func tokenSplitter(t *testing.T, size, overlap int) driven.TextSplitter {
	t.Helper()
	s, err := tokens.New(tokens.WithSize(size), tokens.WithOverlap(overlap), tokens.WithTokenizer(tokens.WordsName, tokens.Words()))
	require.NoError(t, err)
	return s
}

// progressRecorder counts Progress notifications.
type progressRecorder struct {
	callbacks.Noop
	reports []driven.Progress
}

func (p *progressRecorder) Progress(pr driven.Progress) {
	p.reports = append(p.reports, pr)
}

var corpus = []testDoc{
	{id: "d3", text: "the third document has several words in it", author: "ann"},
	{id: "d1", text: "first document text", author: "bob"},
	{id: "d2", text: "second one, also short", author: "ann"},
}

func TestCreateBaseTextUnits_Deterministic(t *testing.T) {
	cfg := domain.ChunkingConfig{Size: 4, Overlap: 1, GroupByColumns: []string{"id"}}

	forward := documentsTable(t, corpus...)
	reversed := documentsTable(t, corpus[2], corpus[1], corpus[0])

	first, err := CreateBaseTextUnits(context.Background(), forward, cfg, tokenSplitter(t, 4, 1), callbacks.Noop{})
	require.NoError(t, err)
	second, err := CreateBaseTextUnits(context.Background(), reversed, cfg, tokenSplitter(t, 4, 1), callbacks.Noop{})
	require.NoError(t, err)

	assert.Equal(t, first, second)

	a, err := tables.Encode(first)
	require.NoError(t, err)
	b, err := tables.Encode(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCreateBaseTextUnits_GroupByID(t *testing.T) {
	cfg := domain.ChunkingConfig{GroupByColumns: []string{"id"}}
	docs := documentsTable(t, corpus...)

	out, err := CreateBaseTextUnits(context.Background(), docs, cfg, tokenSplitter(t, 4, 1), callbacks.Noop{})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "text", "document_ids", "n_tokens"}, out.ColumnNames())
	require.NotZero(t, out.Len())

	var sources []string
	for i := range out.Rows {
		ids := out.StringListValue(i, "document_ids")
		require.Len(t, ids, 1)
		sources = append(sources, ids[0])

		wantID, err := TextUnitID(ids, out.StringValue(i, "text"), int(out.Value(i, "n_tokens").(int64)))
		require.NoError(t, err)
		assert.Equal(t, wantID, out.StringValue(i, "id"))
	}
	assert.IsNonDecreasing(t, sources)
	assert.Equal(t, "d1", sources[0])
}

func TestCreateBaseTextUnits_GlobalGroup(t *testing.T) {
	cfg := domain.ChunkingConfig{GroupByColumns: []string{}}
	docs := documentsTable(t,
		testDoc{id: "b", text: " beta gamma"},
		testDoc{id: "a", text: "alpha"},
	)
	progress := &progressRecorder{}

	out, err := CreateBaseTextUnits(context.Background(), docs, cfg, tokenSplitter(t, 10, 0), progress)
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "id", "document_ids", "n_tokens"}, out.ColumnNames())
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "alpha beta gamma", out.StringValue(0, "text"))
	assert.Equal(t, []string{"a", "b"}, out.StringListValue(0, "document_ids"))
	assert.Equal(t, int64(3), out.Value(0, "n_tokens"))
	assert.Equal(t, []driven.Progress{{Description: "chunk groups", Completed: 1, Total: 1}}, progress.reports)
}

func TestCreateBaseTextUnits_GroupByColumn(t *testing.T) {
	cfg := domain.ChunkingConfig{GroupByColumns: []string{"author"}}
	docs := documentsTable(t, corpus...)
	progress := &progressRecorder{}

	out, err := CreateBaseTextUnits(context.Background(), docs, cfg, tokenSplitter(t, 100, 0), progress)
	require.NoError(t, err)

	assert.Equal(t, []string{"author", "text", "id", "document_ids", "n_tokens"}, out.ColumnNames())
	// After sorting by id, bob (d1) appears before ann (d2, d3).
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "bob", out.StringValue(0, "author"))
	assert.Equal(t, []string{"d1"}, out.StringListValue(0, "document_ids"))
	assert.Equal(t, "ann", out.StringValue(1, "author"))
	assert.Equal(t, []string{"d2", "d3"}, out.StringListValue(1, "document_ids"))
	assert.Len(t, progress.reports, 2)
	assert.Equal(t, 2, progress.reports[1].Completed)
}

func TestCreateBaseTextUnits_DropsEmptyText(t *testing.T) {
	cfg := domain.ChunkingConfig{GroupByColumns: []string{"id"}}
	docs := documentsTable(t,
		testDoc{id: "empty", text: ""},
		testDoc{id: "full", text: "words"},
	)

	out, err := CreateBaseTextUnits(context.Background(), docs, cfg, tokenSplitter(t, 4, 1), callbacks.Noop{})
	require.NoError(t, err)

	require.Equal(t, 1, out.Len())
	assert.Equal(t, "words", out.StringValue(0, "text"))
}

func TestCreateBaseTextUnits_EmptyDocuments(t *testing.T) {
	out, err := CreateBaseTextUnits(context.Background(), documentsTable(t),
		domain.ChunkingConfig{}, tokenSplitter(t, 4, 1), callbacks.Noop{})

	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestCreateBaseTextUnits_PrependMetadata(t *testing.T) {
	cfg := domain.ChunkingConfig{GroupByColumns: []string{"id"}, PrependMetadata: true}
	docs := documentsTable(t, testDoc{
		id:       "d1",
		text:     "body text",
		metadata: map[string]any{"title": "Report", "author": "ann"},
	})

	out, err := CreateBaseTextUnits(context.Background(), docs, cfg, tokenSplitter(t, 10, 0), callbacks.Noop{})
	require.NoError(t, err)

	require.Equal(t, 1, out.Len())
	assert.Equal(t, "author: ann\ntitle: Report\nbody text", out.StringValue(0, "text"))
	// "author:", " ann", "\ntitle:", " Report", "\n" plus the two body tokens
	assert.Equal(t, int64(7), out.Value(0, "n_tokens"))
}

func TestCreateBaseTextUnits_InvalidInput(t *testing.T) {
	splitter := tokenSplitter(t, 4, 1)

	noText := domain.NewTable(domain.Column{Name: "id", Type: domain.ColumnString})
	_, err := CreateBaseTextUnits(context.Background(), noText, domain.ChunkingConfig{}, splitter, callbacks.Noop{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	docs := documentsTable(t, corpus...)
	_, err = CreateBaseTextUnits(context.Background(), docs,
		domain.ChunkingConfig{GroupByColumns: []string{"missing"}}, splitter, callbacks.Noop{})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = CreateBaseTextUnits(context.Background(), docs,
		domain.ChunkingConfig{GroupByColumns: []string{"text"}}, splitter, callbacks.Noop{})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestCreateBaseTextUnits_IntegerIDs(t *testing.T) {
	cfg := domain.ChunkingConfig{GroupByColumns: []string{}}
	build := func(rows ...[]any) *domain.Table {
		table := domain.NewTable(
			domain.Column{Name: "id", Type: domain.ColumnInt},
			domain.Column{Name: "text", Type: domain.ColumnString},
		)
		for _, r := range rows {
			require.NoError(t, table.Append(r...))
		}
		return table
	}

	forward, err := CreateBaseTextUnits(context.Background(),
		build([]any{int64(2), " gamma delta"}, []any{int64(10), " epsilon"}, []any{int64(1), "alpha beta"}),
		cfg, tokenSplitter(t, 10, 0), callbacks.Noop{})
	require.NoError(t, err)
	reversed, err := CreateBaseTextUnits(context.Background(),
		build([]any{int64(1), "alpha beta"}, []any{int64(10), " epsilon"}, []any{int64(2), " gamma delta"}),
		cfg, tokenSplitter(t, 10, 0), callbacks.Noop{})
	require.NoError(t, err)

	assert.Equal(t, forward, reversed)
	require.Equal(t, 1, forward.Len())
	assert.Equal(t, "alpha beta gamma delta epsilon", forward.StringValue(0, "text"))
	assert.Equal(t, []string{"1", "2", "10"}, forward.StringListValue(0, "document_ids"))
}

func TestCreateBaseTextUnits_RejectsNonStringText(t *testing.T) {
	table := domain.NewTable(
		domain.Column{Name: "id", Type: domain.ColumnString},
		domain.Column{Name: "text", Type: domain.ColumnJSON},
	)
	require.NoError(t, table.Append("a", map[string]any{"body": "alpha"}))

	_, err := CreateBaseTextUnits(context.Background(), table, domain.ChunkingConfig{}, tokenSplitter(t, 4, 1), callbacks.Noop{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	floatIDs := domain.NewTable(
		domain.Column{Name: "id", Type: domain.ColumnFloat},
		domain.Column{Name: "text", Type: domain.ColumnString},
	)
	_, err = CreateBaseTextUnits(context.Background(), floatIDs, domain.ChunkingConfig{}, tokenSplitter(t, 4, 1), callbacks.Noop{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTextUnitID(t *testing.T) {
	a, err := TextUnitID([]string{"d1"}, "same text", 2)
	require.NoError(t, err)
	b, err := TextUnitID([]string{"d1"}, "same text", 2)
	require.NoError(t, err)
	c, err := TextUnitID([]string{"d1"}, "other text", 2)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 128)
}
