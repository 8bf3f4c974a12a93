package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qeforge/qeforge/pkg/fileio"
	"github.com/qeforge/qeforge/pkg/jobfile"
	"github.com/qeforge/qeforge/pkg/telemetry"
)

func newRenderCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <job>",
		Short: "Render a job document to program input text",
		Long: `Render a job document to the input text of its program.

The text is written to --output when given, otherwise to the job's output
path, otherwise to stdout. A relative output path in the job document is
resolved against the directory of the job file.`,
		Example: `  # Print the pw.x input for an scf job
  qeforge render si.scf.yaml

  # Write to a file
  qeforge render si.scf.cue -o si.scf.in`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			job, err := jobfile.NewLoader().Load(ctx, path)
			if err != nil {
				return err
			}

			if err := renderTo(cmd, path, output, job); err != nil {
				return fmt.Errorf("failed to render %s: %w", path, err)
			}

			telemetry.FromContext(ctx).
				WithJob(path).
				WithProgram(job.Program).
				Debug("rendered")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (overrides the job's output)")

	return cmd
}

// outputPath picks the destination of rendered text. An empty result means
// stdout.
func outputPath(jobPath, flag, jobOutput string) string {
	switch {
	case flag != "":
		return flag
	case jobOutput == "":
		return ""
	case filepath.IsAbs(jobOutput):
		return jobOutput
	default:
		return filepath.Join(filepath.Dir(jobPath), jobOutput)
	}
}

// renderTo renders job and writes the text to its destination.
func renderTo(cmd *cobra.Command, jobPath, output string, job *jobfile.Job) error {
	text, err := job.Render()
	if err != nil {
		return err
	}

	dest := outputPath(jobPath, output, job.Output)
	if dest == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	return fileio.WriteFile(dest, text)
}
