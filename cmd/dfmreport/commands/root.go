// SPDX-License-Identifier: AGPL-3.0-or-later

/*
dfmreport - manufacturing analysis reports for CAD models.
It runs a model through a manufacturing process (machining, sheet metal or wall
thickness analysis) and exports the ordered, deduplicated process report.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/dfmreport/cmd/dfmreport/internal/clierr"
	"github.com/bartekus/dfmreport/internal/config"
	"github.com/bartekus/dfmreport/internal/convert"
)

// rootOptions holds the state shared by all subcommands once the root
// command has loaded the configuration.
type rootOptions struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func (o *rootOptions) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return clierr.Wrap(convert.CodeInvalidArgument, "loading configuration", err)
	}
	logger, err := cfg.NewLogger(o.verbose)
	if err != nil {
		return clierr.Wrap(convert.CodeGeneralException, "creating logger", err)
	}
	o.cfg = cfg
	o.logger = logger
	return nil
}

func (o *rootOptions) sync(*cobra.Command, []string) {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}

// NewRootCmd constructs the dfmreport root Cobra command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "dfmreport",
		Short: "dfmreport - manufacturing analysis reports for CAD models",
		Long: `dfmreport analyzes CAD models for a manufacturing process and exports
the recognized features and manufacturability issues as a process report.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.setup,
		PersistentPostRun: opts.sync,
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to the configuration file")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of dfmreport",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dfmreport version %s\n", config.Version())
		},
	})

	cmd.AddCommand(newConvertCmd(opts))
	cmd.AddCommand(newInspectCmd(opts))
	cmd.AddCommand(newBatchCmd(opts))

	return cmd
}
