package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/aparna-bhatt/nodedetails"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the dependencies shared by all subcommands
type app struct {
	config       *Config
	logger       *slog.Logger
	source       nodedetails.Source
	loader       *nodedetails.Loader
	renderLogger nodedetails.RenderLogger
	formatter    nodedetails.DetailFormatter
}

func NewRootCmd(out io.Writer) *cobra.Command {
	var configFile string
	a := &app{}

	root := &cobra.Command{
		Use:           "nodedetails",
		Short:         "Show details of plugin instances in a feed",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			v, err := NewViper(configFile)
			if err != nil {
				return err
			}
			if err := bindFlags(v, cmd); err != nil {
				return err
			}
			cfg, err := Load(v)
			if err != nil {
				return err
			}
			return a.init(cfg, out)
		},
	}

	root.SetOut(out)

	defaults := Default()
	flags := root.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default "+ConfigFile()+")")
	flags.StringP("feed", "f", defaults.Feed, "feed document (YAML, or JSON with a .json extension)")
	flags.StringP("log-dir", "l", defaults.LogDir, "directory to record resolved details in")
	flags.Bool("json", defaults.JSON, "output JSON")
	flags.BoolP("verbose", "v", defaults.Verbose, "enable debug logging")
	flags.Int("page-size", defaults.PageSize, "parameters requested per page")
	flags.Int("retries", defaults.Retries, "retries for recoverable fetch errors")
	flags.Duration("retry-delay", defaults.RetryDelay, "delay between retries")
	flags.DurationP("timeout", "t", defaults.Timeout, "command timeout (0 disables it)")

	root.AddCommand(newShowCmd(a))
	root.AddCommand(newCommandCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newHistoryCmd(a))

	return root
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	keys := map[string]string{
		"feed":        "feed",
		"log_dir":     "log-dir",
		"json":        "json",
		"verbose":     "verbose",
		"page_size":   "page-size",
		"retries":     "retries",
		"retry_delay": "retry-delay",
		"timeout":     "timeout",
	}
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) init(cfg *Config, out io.Writer) error {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	if cfg.JSON {
		a.logger = nodedetails.NewJSONLogger(level)
	} else {
		a.logger = nodedetails.NewLogger(level)
	}

	source, err := nodedetails.LoadFeedFile(cfg.Feed)
	if err != nil {
		return err
	}

	if cfg.LogDir != "" {
		a.renderLogger = nodedetails.NewFileRenderLogger(cfg.LogDir)
	} else {
		a.renderLogger = nodedetails.NewNullRenderLogger()
	}

	loader, err := nodedetails.NewLoader(nodedetails.LoaderOptions{
		Plugins:      source,
		Parameters:   source,
		Logger:       a.logger,
		RenderLogger: a.renderLogger,
		PageSize:     cfg.PageSize,
		Retries:      cfg.Retries,
		RetryDelay:   cfg.RetryDelay,
	})
	if err != nil {
		return err
	}

	if cfg.JSON {
		a.formatter = newJSONFormatter(out)
	} else {
		a.formatter = newTextFormatter(out)
	}
	a.config = cfg
	a.source = source
	a.loader = loader
	return nil
}

// commandContext returns the command context bounded by the configured timeout
func (a *app) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.config.Timeout > 0 {
		return context.WithTimeout(ctx, a.config.Timeout)
	}
	return context.WithCancel(ctx)
}
