package commands

import (
	"github.com/spf13/cobra"

	"github.com/bartekus/dfmreport/cmd/dfmreport/internal/clierr"
	"github.com/bartekus/dfmreport/internal/convert"
	"github.com/bartekus/dfmreport/internal/process"
	"github.com/bartekus/dfmreport/internal/report"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var processName string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print per-entity analysis results of a model to the console",
	}
	cmd.PersistentFlags().StringVarP(&processName, "process", "p", process.TypeMachiningMilling.String(), "manufacturing process")

	sub := []struct {
		use   string
		short string
		what  report.Inspection
		typ   func() string
	}{
		{use: "features", short: "Print the recognized features of every entity", what: report.InspectFeatures},
		{use: "dfm", short: "Print the manufacturability issues of every entity", what: report.InspectIssues},
		{use: "wall-thickness", short: "Print the wall thickness of every entity", what: report.InspectWallThickness},
		{use: "unfold", short: "Print the flat pattern of every sheet metal entity", what: report.InspectFlatPattern,
			typ: process.TypeSheetMetal.String},
	}

	for _, s := range sub {
		cmd.AddCommand(&cobra.Command{
			Use:   s.use + " <file>",
			Short: s.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := processName
				if s.typ != nil && !cmd.Flags().Changed("process") {
					name = s.typ()
				}
				typ, err := process.ParseType(name)
				if err != nil {
					return clierr.Wrap(convert.CodeInvalidArgument, "inspect failed", err)
				}

				m, err := convert.LoadModel(args[0])
				if err != nil {
					return clierr.Wrap(convert.ExitCode(err), "inspect failed", err)
				}

				console := report.NewConsole(cmd.OutOrStdout(), nil)
				if err := console.Inspect(m, s.what, typ); err != nil {
					return clierr.Wrap(convert.CodeInvalidArgument, "inspect failed", err)
				}
				return nil
			},
		})
	}

	return cmd
}
