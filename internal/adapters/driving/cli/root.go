package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/custodia-labs/graphidx/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Viper keys for global options. Each is also read from GRAPHIDX_<KEY>.
const (
	keyRoot    = "root"
	keyConfig  = "config"
	keyVerbose = "verbose"
	keyMethod  = "method"
)

var rootCmd = &cobra.Command{
	Use:   "graphidx",
	Short: "Build a knowledge index from a directory of documents",
	Long: `graphidx loads input documents, splits them into text units and writes
the resulting tables to the configured output storage.

Indexing runs a named pipeline of workflows. Run "graphidx pipelines" to list
what is available and "graphidx init" to write a starter configuration.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP(keyRoot, "r", ".", "project root directory")
	flags.StringP(keyConfig, "c", "", "config file (default: settings.toml, settings.yaml or settings.yml in the root)")
	flags.BoolP(keyVerbose, "v", false, "enable debug logging")

	_ = viper.BindPFlag(keyRoot, flags.Lookup(keyRoot))
	_ = viper.BindPFlag(keyConfig, flags.Lookup(keyConfig))
	_ = viper.BindPFlag(keyVerbose, flags.Lookup(keyVerbose))
}

func initConfig() {
	viper.SetEnvPrefix("GRAPHIDX")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	logger.SetVerbose(viper.GetBool(keyVerbose))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
