// launchdash serves and exports the launch records dashboard.
//
// Usage:
//
//	launchdash serve   [--config=<yaml>] [--data=<csv>] [--listen=<addr>]
//	launchdash chart   --panel=pie|scatter [--site=<site>] [--low=<kg>] [--high=<kg>] [--format=json|pretty|csv|png] [--out=<path>]
//	launchdash summary [--format=table|csv|json]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/launchdash/config"
	"github.com/spektr-org/launchdash/dataset"
	"github.com/spektr-org/launchdash/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dataPath   string
	logLevel   string
	logFormat  string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "launchdash",
		Short: "Interactive launch records dashboard",
		Long: "launchdash loads a launch records CSV and serves a dashboard with a\n" +
			"success breakdown pie chart and a payload vs. outcome scatter chart.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	f.StringVar(&opts.dataPath, "data", "", "launch records CSV (overrides data_path)")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
	f.StringVar(&opts.logFormat, "log-format", "", "text or json (overrides log.format)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newChartCmd(opts))
	cmd.AddCommand(newSummaryCmd(opts))
	return cmd
}

// resolve loads the config file, applies flag overrides and configures
// logging. Flags win over the file; the file wins over defaults.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath = o.dataPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if flags.Lookup("listen") != nil && flags.Changed("listen") {
		cfg.Listen, _ = flags.GetString("listen")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logging.Init(level, cfg.Log.Format, cmd.ErrOrStderr())

	o.cfg = cfg
	return nil
}

func (o *rootOptions) loadDataset() (*dataset.Dataset, error) {
	ds, err := dataset.Load(o.cfg.DataPath, dataset.WithSuccessCode(o.cfg.SuccessCode))
	if err != nil {
		return nil, fmt.Errorf("load launch records: %w", err)
	}
	return ds, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
