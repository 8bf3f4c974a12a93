package commands

import (
	"github.com/spf13/cobra"

	"github.com/qeforge/qeforge/pkg/jobfile"
	"github.com/qeforge/qeforge/pkg/telemetry"
)

func newWatchCommand() *cobra.Command {
	var (
		output   string
		debounce = jobfile.DefaultDebounce
	)

	cmd := &cobra.Command{
		Use:   "watch <job>",
		Short: "Re-render a job document whenever it changes",
		Long: `Render a job document and render it again each time the file is saved,
until interrupted. Load and validation errors are logged and the previous
output is left in place.`,
		Example: `  qeforge watch si.scf.yaml -o si.scf.in`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			logger := telemetry.FromContext(ctx).WithJob(path)

			w := jobfile.NewWatcher(jobfile.NewLoader(), path)
			w.SetDebounce(debounce)

			return w.Run(ctx, func(job *jobfile.Job, err error) {
				if err == nil {
					err = renderTo(cmd, path, output, job)
				}
				if err != nil {
					logger.WithError(err).Error("render failed")
					return
				}
				logger.WithProgram(job.Program).Info("rendered")
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (overrides the job's output)")
	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "quiet period before re-rendering")

	return cmd
}
