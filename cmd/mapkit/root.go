package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds the state shared by every command of one invocation.
type app struct {
	stdin   io.Reader
	cfg     *viper.Viper
	logger  *zap.Logger
	cfgFile string
	verbose bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "mapkit",
		Short: "Structural operations on YAML and JSON documents",
		Long: `mapkit merges, flattens, queries and reshapes YAML and JSON documents
while keeping their key order.

Paths are written with a separator between keys ("server.http.port");
a backslash escapes the separator inside a key.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			a.cfg = cfg
			a.stdin = cmd.InOrStdin()

			if a.logger != nil {
				return nil
			}

			logger, err := newLogger(cfg.GetString(cfgKeyLogLevel), a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			a.logger = logger

			if used := cfg.ConfigFileUsed(); used != "" {
				logger.Debug("config loaded", zap.String("file", used))
			}

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: .mapkit.yaml or ~/.config/mapkit/.mapkit.yaml)")
	flags.StringP("output", "o", defaultOutput, "output format: yaml or json")
	flags.String("separator", defaultSeparator, "separator between keys in paths")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newMergeCmd(a),
		newFlatCmd(a),
		newUnflatCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newFilterCmd(a),
		newDeleteCmd(a),
		newGrepCmd(a),
		newKeysCmd(a),
		newRedactCmd(a),
		newDumpCmd(a),
		newVersionCmd(),
	)

	return root
}

// newLogger builds a production zap logger at level, or at debug level when
// verbose is set.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	config.Level = lvl
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return config.Build()
}
