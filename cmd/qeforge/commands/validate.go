package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qeforge/qeforge/pkg/jobfile"
	"github.com/qeforge/qeforge/pkg/telemetry"
)

// errInvalid is returned after the violations have been printed.
var errInvalid = errors.New("job document is invalid")

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <job>...",
		Short: "Validate job documents",
		Long: `Validate job documents without writing any input file.

This command checks:
  - YAML, JSON or CUE syntax
  - Document shape (required keys, known values, no unknown keys)
  - pw.x input properties (alat, thresholds, cutoffs, smearing, masses)
  - Path encodings

Every violation is printed, not only the first.`,
		Example: `  # Validate one job
  qeforge validate si.scf.yaml

  # Validate several jobs
  qeforge validate jobs/*.cue`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			loader := jobfile.NewLoader()

			failed := 0
			for _, path := range args {
				logger := telemetry.FromContext(ctx).WithJob(path)

				job, err := loader.Load(ctx, path)
				if err == nil {
					_, err = job.Render()
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: invalid\n", path)
					for _, line := range strings.Split(err.Error(), "\n") {
						fmt.Fprintf(out, "  - %s\n", line)
					}
					logger.Debug("validation failed")
					continue
				}

				fmt.Fprintf(out, "%s: ok (%s)\n", path, job.Program)
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d failed", errInvalid, failed, len(args))
			}
			return nil
		},
	}

	return cmd
}
