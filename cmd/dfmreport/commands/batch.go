package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/dfmreport/cmd/dfmreport/internal/clierr"
	"github.com/bartekus/dfmreport/internal/batch"
	"github.com/bartekus/dfmreport/internal/convert"
	"github.com/bartekus/dfmreport/internal/process"
	"github.com/bartekus/dfmreport/internal/scanner"
)

type batchOptions struct {
	*rootOptions

	stateDir    string
	processName string
	target      string
	dir         string
	parallel    int
	json        bool
}

func (o *batchOptions) store() *batch.StateStore {
	dir := o.stateDir
	if dir == "" {
		dir = o.cfg.Batch.StateDir
	}
	return batch.NewStateStore(dir)
}

// validate checks the process before any model is touched.
func (o *batchOptions) validate() error {
	if _, err := process.ParseType(o.processName); err != nil {
		return clierr.Wrap(convert.CodeInvalidArgument, "batch failed", err)
	}
	if o.target == "" {
		return clierr.New(convert.CodeInvalidArgument, "batch failed: empty export folder")
	}
	return nil
}

func (o *batchOptions) runner(cmd *cobra.Command, sources []string) *batch.Runner {
	app := convert.New(o.cfg, convert.WithLogger(o.logger))
	jobs := convert.Jobs(app, sources, o.processName, o.target, o.dir)
	r := batch.NewRunner(jobs, o.store(), cmd.OutOrStdout(), o.logger)
	if o.parallel > 0 {
		r.SetParallel(o.parallel)
	} else {
		r.SetParallel(o.cfg.Batch.Parallel)
	}
	return r
}

// excludedOutput returns the folder name to skip when the export folder sits
// inside the scanned folder, so exported unfolded models are not picked up.
func (o *batchOptions) excludedOutput() []string {
	rel, err := filepath.Rel(o.dir, o.target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}
	return []string{strings.Split(filepath.ToSlash(rel), "/")[0]}
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert many models and resume failed conversions",
		Long: `Convert every model of a folder, one after another.
Each model is exported into its own folder below the export folder. The
outcome of every conversion is kept in the state directory so that failed
conversions can be resumed.`,
	}
	cmd.PersistentFlags().StringVar(&opts.stateDir, "state-dir", "", "directory to store run state (default from configuration)")

	run := &cobra.Command{
		Use:   "run [files...]",
		Short: "Convert the given models or every model below --dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			sources := args
			if len(sources) == 0 {
				found, err := scanner.New(opts.dir).ModelFiles(cmd.Context(), opts.excludedOutput()...)
				if err != nil {
					return clierr.Wrap(convert.CodeImportError, "batch failed", err)
				}
				sources = found
			}
			if len(sources) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No models found in %s.\n", opts.dir)
				return nil
			}
			return opts.runner(cmd, sources).RunAll(cmd.Context())
		},
	}
	run.Flags().StringVarP(&opts.processName, "process", "p", "", "manufacturing process")
	run.Flags().StringVarP(&opts.target, "export", "e", "", "folder receiving the results")
	run.Flags().StringVar(&opts.dir, "dir", ".", "folder searched for models when no files are given")
	run.Flags().IntVarP(&opts.parallel, "parallel", "j", 0, "conversions run at once (default from configuration)")
	_ = run.MarkFlagRequired("process")
	_ = run.MarkFlagRequired("export")

	resume := &cobra.Command{
		Use:   "resume",
		Short: "Convert again the models that failed in the last run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			failed, err := opts.store().LoadFailedJobs()
			if err != nil {
				return err
			}
			return opts.runner(cmd, failed).Resume(cmd.Context())
		},
	}
	resume.Flags().StringVarP(&opts.processName, "process", "p", "", "manufacturing process")
	resume.Flags().StringVarP(&opts.target, "export", "e", "", "folder receiving the results")
	resume.Flags().StringVar(&opts.dir, "dir", ".", "folder the models of the last run were searched in")
	_ = resume.MarkFlagRequired("process")
	_ = resume.MarkFlagRequired("export")

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Convert models below --dir whenever they are created or changed",
		Long: `Watch a folder and convert every model file once it stops changing.
Each conversion is recorded as its own run. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			w := scanner.NewWatcher(opts.dir, opts.cfg.Batch.WatchDebounce, opts.logger, opts.excludedOutput()...)
			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", opts.dir)
			return w.Watch(cmd.Context(), func(path string) {
				if err := opts.runner(cmd, []string{path}).RunAll(cmd.Context()); err != nil {
					opts.logger.Warn("conversion failed", zap.String("path", path), zap.Error(err))
				}
			})
		},
	}
	watch.Flags().StringVarP(&opts.processName, "process", "p", "", "manufacturing process")
	watch.Flags().StringVarP(&opts.target, "export", "e", "", "folder receiving the results")
	watch.Flags().StringVar(&opts.dir, "dir", ".", "folder watched for models")
	_ = watch.MarkFlagRequired("process")
	_ = watch.MarkFlagRequired("export")

	report := &cobra.Command{
		Use:   "report",
		Short: "Show last run status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := opts.store()
			if opts.json {
				last, err := store.ReadLastRun()
				if err != nil {
					return err
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(last)
			}
			md, err := store.RenderLastRun()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	report.Flags().BoolVar(&opts.json, "json", false, "output the last run as JSON")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear run state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := opts.store()
			if err := store.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", store.Dir())
			return nil
		},
	}

	cmd.AddCommand(run, resume, watch, report, reset)
	return cmd
}
