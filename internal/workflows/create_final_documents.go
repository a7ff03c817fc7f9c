package workflows

import (
	"context"
	"fmt"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/logger"
	"github.com/custodia-labs/graphidx/internal/tables"
)

// CreateFinalDocumentsName is the registered name of the document finalisation workflow.
const CreateFinalDocumentsName = "create_final_documents"

// ColumnNameHumanReadableID is the row number column added to final documents.
const ColumnNameHumanReadableID = "human_readable_id"

// CreateFinalDocuments links each document to the text units cut from it and
// rewrites the documents table.
func CreateFinalDocuments(ctx context.Context, _ *domain.Config, rc *driven.RunContext) (domain.WorkflowOutput, error) {
	documents, err := tables.Load(ctx, domain.TableDocuments, rc.OutputStorage)
	if err != nil {
		return domain.WorkflowOutput{}, err
	}
	textUnits, err := tables.Load(ctx, domain.TableTextUnits, rc.OutputStorage)
	if err != nil {
		return domain.WorkflowOutput{}, err
	}

	output, err := FinalizeDocuments(documents, textUnits)
	if err != nil {
		return domain.WorkflowOutput{}, err
	}

	if err := tables.Write(ctx, output, domain.TableDocuments, rc.OutputStorage); err != nil {
		return domain.WorkflowOutput{}, err
	}
	logger.For(CreateFinalDocumentsName).Info("finalised %d documents", output.Len())
	return domain.WorkflowOutput{Result: output}, nil
}

// FinalizeDocuments adds a text_unit_ids column listing, for each document, the
// ids of the text units referencing it in text_units row order, and a
// human_readable_id column holding the row number. Documents keep their order;
// a document no text unit references gets an empty list.
func FinalizeDocuments(documents, textUnits *domain.Table) (*domain.Table, error) {
	for _, col := range []string{domain.ColumnNameID, domain.ColumnNameDocumentIDs} {
		if !textUnits.HasColumn(col) {
			return nil, fmt.Errorf("%w: text_units table has no %s column", domain.ErrInvalidInput, col)
		}
	}
	if !documents.HasColumn(domain.ColumnNameID) {
		return nil, fmt.Errorf("%w: documents table has no %s column", domain.ErrInvalidInput, domain.ColumnNameID)
	}

	units := make(map[string][]string)
	for i := range textUnits.Rows {
		unitID := textUnits.StringValue(i, domain.ColumnNameID)
		seen := make(map[string]bool)
		for _, docID := range textUnits.StringListValue(i, domain.ColumnNameDocumentIDs) {
			if seen[docID] {
				continue
			}
			seen[docID] = true
			units[docID] = append(units[docID], unitID)
		}
	}

	ids := make([]any, documents.Len())
	rowNumbers := make([]any, documents.Len())
	for i := range documents.Rows {
		list := units[documents.StringValue(i, domain.ColumnNameID)]
		if list == nil {
			list = []string{}
		}
		ids[i] = list
		rowNumbers[i] = int64(i)
	}

	out, err := documents.WithColumn(domain.Column{Name: ColumnNameHumanReadableID, Type: domain.ColumnInt}, rowNumbers)
	if err != nil {
		return nil, err
	}
	return out.WithColumn(domain.Column{Name: domain.ColumnNameTextUnitIDs, Type: domain.ColumnStringList}, ids)
}
