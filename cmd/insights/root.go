package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/worldinsights/internal/config"
	"github.com/jask/worldinsights/internal/dataset"
	"github.com/jask/worldinsights/internal/logging"
)

// env is what every subcommand needs once flags are parsed.
type env struct {
	cfg   config.Config
	log   *zap.Logger
	world *dataset.World
}

func (e *env) setup(configPath string, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	world, err := loadWorld(cfg.Dataset.Path)
	if err != nil {
		return err
	}
	e.cfg, e.log, e.world = cfg, log, world
	e.log.Debug("started", zap.String("dataset", datasetName(cfg.Dataset.Path)))
	return nil
}

// finish records a failed command and flushes the log. It runs after Execute
// so it also covers commands whose RunE returned an error.
func (e *env) finish(err error) {
	if e.log == nil {
		return
	}
	if err != nil {
		e.log.Error("command failed", zap.Error(err))
	}
	_ = e.log.Sync()
}

func loadWorld(path string) (*dataset.World, error) {
	if path == "" {
		return dataset.Default(), nil
	}
	w, err := dataset.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return w, nil
}

func datasetName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func newRootCmd() (*cobra.Command, *env) {
	var (
		configPath string
		verbose    bool
	)
	e := &env{}
	root := &cobra.Command{
		Use:          "insights",
		Short:        "Drill into regional issues and the opportunities they open up",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(configPath, verbose)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $INSIGHTS_CONFIG or ~/.config/insights/config.toml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	browse := newBrowseCmd(e)
	root.RunE = browse.RunE
	root.Flags().AddFlagSet(browse.Flags())

	root.AddCommand(
		browse,
		newShowCmd(e),
		newSearchCmd(e),
		newServeCmd(e),
		newValidateCmd(e),
	)
	return root, e
}
