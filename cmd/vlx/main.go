package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/verilox/config"
)

var version = "0.1.0"

var log = commonlog.GetLogger("verilox.cli")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vlx:", err)
		os.Exit(1)
	}
}

// app holds the settings shared by every subcommand.
type app struct {
	cfg        *config.Config
	configPath string
	verbosity  int
	color      string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:               "vlx",
		Short:             "A streaming Verilog and SystemVerilog parser",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: verilox.yaml, verilox.yml or verilox.toml in the working directory)")
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "", "color output: auto, always, never")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newLexCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.LoadFrom(".")
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("verbose") {
		a.cfg.Verbosity = a.verbosity
	}
	if cmd.Flags().Changed("color") {
		a.cfg.Color = a.color
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}

	commonlog.Configure(a.cfg.Verbosity, a.cfg.LogPath())
	if a.cfg.Path != "" {
		log.Debugf("using config %s", a.cfg.Path)
	}
	return nil
}
