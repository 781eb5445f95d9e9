package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/dfmreport/cmd/dfmreport/internal/clierr"
	"github.com/bartekus/dfmreport/internal/convert"
	"github.com/bartekus/dfmreport/internal/process"
)

func newConvertCmd(opts *rootOptions) *cobra.Command {
	var (
		input       string
		processName string
		target      string
		summary     bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Analyze a model for a process and export the process report",
		Long: fmt.Sprintf(`Import a model, run it through a manufacturing process and write the
process report into the export folder.

Processes: %s

Exit codes: %d invalid argument, %d unexpected format, %d import error,
%d process error, %d export error, %d general exception.`,
			strings.Join(process.TypeNames(), ", "),
			convert.CodeInvalidArgument, convert.CodeUnexpectedFormat, convert.CodeImportError,
			convert.CodeProcessError, convert.CodeExportError, convert.CodeGeneralException),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appOpts := []convert.Option{convert.WithLogger(opts.logger)}
			if cmd.Flags().Changed("summary") {
				appOpts = append(appOpts, convert.WithSummary(summary))
			}

			res, err := convert.New(opts.cfg, appOpts...).Run(cmd.Context(), input, processName, target)
			if err != nil {
				return clierr.Wrap(convert.ExitCode(err), "conversion failed", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Model: %s\n", res.Model)
			fmt.Fprintf(out, "Process: %s\n", res.Process)
			fmt.Fprintf(out, "Report: %s\n", res.ReportPath)
			if res.SummaryPath != "" {
				fmt.Fprintf(out, "Summary: %s\n", res.SummaryPath)
			}
			if res.UnfoldedPath != "" {
				fmt.Fprintf(out, "Unfolded model: %s\n", res.UnfoldedPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "model file to import")
	cmd.Flags().StringVarP(&processName, "process", "p", "", "manufacturing process")
	cmd.Flags().StringVarP(&target, "export", "e", "", "folder receiving the results")
	cmd.Flags().BoolVar(&summary, "summary", false, "also write the Markdown part summary")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("process")
	_ = cmd.MarkFlagRequired("export")

	return cmd
}
