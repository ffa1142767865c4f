package terminal

import (
	"io"
	"os"

	"github.com/de-tools/erate-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/erate-atlas/pkg/runtime/terminal/console"
	"github.com/de-tools/erate-atlas/pkg/services/config"
	"github.com/de-tools/erate-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	deps    *commands.Deps
	rootCmd *cobra.Command
	cfgPath string
	logger  zerolog.Logger
}

// Options contain configuration for the CLI
type Options struct {
	Output  io.Writer
	Logger  zerolog.Logger
	NoColor bool
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var style report.Styler = console.ANSIStyler{}
	if opts.NoColor {
		style = report.PlainStyler{}
	}

	cli := &CLI{
		deps: &commands.Deps{
			Profile:  config.Default(),
			Reporter: console.NewReporter(opts.Output, style),
		},
		logger: opts.Logger,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "erate",
		Short:         "E-Rate network equipment spending analyzer",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := config.Load(cli.cfgPath)
			if err != nil {
				return err
			}
			cli.deps.Profile = profile
			cmd.SetContext(cli.logger.WithContext(cmd.Context()))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "",
		"Path to a profile file overriding the defaults")

	cmd.AddCommand(commands.NewHistoryCmd(cli.deps))
	cmd.AddCommand(commands.NewFindSchoolCmd(cli.deps))
	cmd.AddCommand(commands.NewStateCmd(cli.deps))

	return cmd
}
