// Package cmd assembles the fgdb command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/hankinsohl/fgdb/biz/service"
	"github.com/hankinsohl/fgdb/pkg/config"
	"github.com/hankinsohl/fgdb/pkg/constants"
	"github.com/hankinsohl/fgdb/pkg/logging"
)

// skipConfig marks commands that run before a configuration exists.
const skipConfig = "skip-config"

// app carries state shared by every subcommand of one invocation.
type app struct {
	configFile string
	rootPath   string
	variant    string
	logLevel   string

	cfg      *config.Config
	registry *prometheus.Registry
	svc      *service.Service
}

// RootCommand creates and returns the root command
func RootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "fgdb",
		Short:         "Filter generator catalog database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				logging.Setup(a.logLevel, "text")
				return nil
			}
			return a.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", constants.ConfigFileName, "Configuration file")
	rootCmd.PersistentFlags().StringVar(&a.rootPath, "root", "", "Override root_path")
	rootCmd.PersistentFlags().StringVar(&a.variant, "variant", "", "Override game_variant (poe1 or poe2)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log.level")

	rootCmd.AddCommand(
		initCommand(a),
		updateCommand(a),
		countsCommand(a),
		exportCommand(a),
		importCommand(a),
		partialCommand(a),
		publishCommand(a),
		serveCommand(a),
		configCommand(),
	)
	return rootCmd
}

// Execute runs the command line against ctx.
func Execute(ctx context.Context, args []string) error {
	root := RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) load() error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.rootPath != "" {
		cfg.RootPath = a.rootPath
	}
	if a.variant != "" {
		cfg.GameVariant = a.variant
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	a.cfg = cfg
	return nil
}

// service builds the service graph on first use.
func (a *app) service() (*service.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	svc, err := service.New(a.cfg, a.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to set up services: %w", err)
	}
	a.svc = svc
	return svc, nil
}

func (a *app) close() error {
	if a.svc == nil {
		return nil
	}
	err := a.svc.Close()
	a.svc = nil
	return err
}
