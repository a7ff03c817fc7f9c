package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var pipelinesCmd = &cobra.Command{
	Use:   "pipelines",
	Short: "List indexing pipelines",
	Long: `List the registered pipelines and the workflows each one runs.

Workflows a pipeline names but no one has registered are reported at
index time, not here.`,
	Args: cobra.NoArgs,
	RunE: runPipelines,
}

var workflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "List registered workflows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, name := range newApp().index.Workflows() {
			cmd.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pipelinesCmd)
	rootCmd.AddCommand(workflowsCmd)
}

func runPipelines(cmd *cobra.Command, _ []string) error {
	for _, p := range newApp().index.Pipelines() {
		cmd.Printf("%s: %s\n", p.Name, strings.Join(p.Workflows, ", "))
	}
	return nil
}
