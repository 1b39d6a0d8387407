// Command layoutkit measures, arranges and applies layout trees described in
// YAML tree files.
//
// Usage:
//
//	layoutkit arrange tree.yaml --width 320 --height 480
//	layoutkit apply tree.yaml --passes 3
//	layoutkit inspect tree.yaml --watch --addr 127.0.0.1:7070
//	layoutkit version
package main

import (
	"fmt"
	"os"

	"github.com/grindlemire/go-layoutkit/internal/config"
	"github.com/grindlemire/go-layoutkit/internal/debug"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

// globals is shared by every subcommand.
type globals struct {
	configFile string
	cfg        *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "layoutkit",
		Short: "Measure, arrange and apply declarative layout trees",
		Long: `layoutkit runs layout trees described in YAML through the layout
pipeline: measurement and arrangement off the UI loop, then view reuse
and apply on it, against in-memory headless views.

Settings come from --config (default ./layoutkit.yaml), then LAYOUTKIT_*
environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.load(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return debug.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configFile, "config", "c", "", "config file (default is ./layoutkit.yaml)")
	flags.Int("workers", 0, "concurrent layout computations (pipeline.workers)")
	flags.String("log-level", "", "debug log level (logging.level)")
	flags.String("log-file", "", "debug log file (logging.file)")

	root.AddCommand(
		arrangeCmd(g),
		applyCmd(g),
		inspectCmd(g),
		versionCmd(),
	)
	return root
}

var flagKeys = map[string]string{
	"workers":   "pipeline.workers",
	"log-level": "logging.level",
	"log-file":  "logging.file",
}

// load reads configuration and starts debug logging.
func (g *globals) load(cmd *cobra.Command) error {
	v, err := config.New(g.configFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	g.cfg = cfg

	if cfg.Logging.File != "" {
		return debug.Init(cfg.DebugOptions())
	}
	_, err = debug.InitFromEnv()
	return err
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}
