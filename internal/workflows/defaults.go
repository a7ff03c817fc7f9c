package workflows

import (
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/core/services"
)

// Pipeline names.
const (
	// PipelineStandard is the full graph indexing recipe. Only its first three
	// workflows are built in; the graph, community and embedding workflows must
	// be registered by the caller before the pipeline is created.
	PipelineStandard = "standard"

	// PipelineText loads, chunks and finalises documents.
	PipelineText = "text"
)

// StandardWorkflows is the workflow order of the standard pipeline.
var StandardWorkflows = []string{
	LoadInputDocumentsName,
	CreateBaseTextUnitsName,
	CreateFinalDocumentsName,
	"extract_graph",
	"finalize_graph",
	"create_communities",
	"create_final_text_units",
	"create_community_reports",
	"generate_text_embeddings",
}

// TextWorkflows is the workflow order of the text pipeline.
var TextWorkflows = []string{
	LoadInputDocumentsName,
	CreateBaseTextUnitsName,
	CreateFinalDocumentsName,
}

// RegisterDefaults registers the built-in workflows and pipelines.
// Call this during application initialisation, before any pipeline is created.
func RegisterDefaults(
	workflows *services.WorkflowRegistry,
	pipelines *services.PipelineRegistry,
	splitters driven.SplitterFactory,
	normalisers driven.NormaliserLookup,
) {
	workflows.RegisterAll(map[string]driven.WorkflowFunc{
		LoadInputDocumentsName:   NewLoadInputDocuments(normalisers),
		CreateBaseTextUnitsName:  NewCreateBaseTextUnits(splitters),
		CreateFinalDocumentsName: CreateFinalDocuments,
	})

	pipelines.RegisterPipeline(PipelineStandard, StandardWorkflows)
	pipelines.RegisterPipeline(PipelineText, TextWorkflows)
}
