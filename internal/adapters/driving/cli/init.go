package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/custodia-labs/graphidx/internal/adapters/driven/config/file"
	"github.com/custodia-labs/graphidx/internal/core/domain"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration",
	Long: `Write a settings file with the default configuration into the project root
and create the input directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("format", "toml", "config format: toml or yaml")
	initCmd.Flags().Bool("force", false, "overwrite an existing settings file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	root := viper.GetString(keyRoot)
	format, _ := cmd.Flags().GetString("format")
	force, _ := cmd.Flags().GetBool("force")

	var name string
	switch format {
	case "toml":
		name = "settings.toml"
	case "yaml":
		name = "settings.yaml"
	default:
		return fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidConfig, format)
	}

	path := filepath.Join(root, name)
	// Relative base directories keep the file valid if the project moves.
	if err := file.Save(path, file.Default(""), force); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(root, domain.DefaultInputBaseDir), 0755); err != nil {
		return err
	}

	cmd.Printf("Wrote %s\n", path)
	return nil
}
