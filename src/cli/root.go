package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"512b.it/drawday/src/config"
	"512b.it/drawday/src/targets"
)

type rootOptions struct {
	configFile string
	dotenvDir  string
	v          *viper.Viper
}

// NewRootCommand builds the drawday command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "drawday",
		Short:         "Daily drawing game backend",
		Long:          "drawday picks the drawing of the day and scores submitted drawings with a multimodal judge.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.v = config.New(opts.configFile)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default ./drawday.yaml or $HOME/drawday.yaml)")
	root.PersistentFlags().StringVar(&opts.dotenvDir, "env-dir", ".", "directory holding an optional .env file")
	root.PersistentFlags().String("targets", "", "YAML target catalog replacing the built-in one")

	root.AddCommand(newServeCommand(opts), newTargetCommand(opts))
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// load binds the command's flags and reads the configuration
func (o *rootOptions) load(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	bindings["targets.file"] = "targets"
	for key, flag := range bindings {
		f := cmd.Flag(flag)
		if f == nil {
			return nil, fmt.Errorf("unknown flag %q", flag)
		}
		if err := o.v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return config.Load(o.v, o.dotenvDir)
}

func loadCatalog(cfg *config.Config) (*targets.Catalog, error) {
	if cfg.Targets.File == "" {
		return targets.DefaultCatalog(), nil
	}
	return targets.LoadFile(cfg.Targets.File)
}
