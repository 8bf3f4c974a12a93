package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qeforge/qeforge/pkg/namelist"
	"github.com/qeforge/qeforge/pkg/pw"
)

func newKPointsCommand() *cobra.Command {
	var grid []uint

	cmd := &cobra.Command{
		Use:   "kpoints",
		Short: "Print a uniform k-point grid as a crystal K_POINTS card",
		Long: `Print the explicit crystal k-point list that a crystal_uniform grid
expands to. The first index varies slowest and every weight is 1/N.`,
		Example: `  qeforge kpoints --grid 4,4,4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(grid) != 3 {
				return fmt.Errorf("--grid needs exactly 3 values, got %d", len(grid))
			}

			nk := [3]uint64{uint64(grid[0]), uint64(grid[1]), uint64(grid[2])}
			if err := pw.CheckUniformGrid(nk); err != nil {
				return err
			}
			points := pw.UniformGrid(nk)

			var b strings.Builder
			fmt.Fprintf(&b, "K_POINTS crystal\n %d\n", len(points))
			for _, p := range points {
				fmt.Fprintf(&b, " %s %s %s %s\n",
					namelist.Float(p[0]), namelist.Float(p[1]), namelist.Float(p[2]), namelist.Float(p[3]))
			}

			_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}

	cmd.Flags().UintSliceVar(&grid, "grid", nil, "grid size n1,n2,n3")
	_ = cmd.MarkFlagRequired("grid")

	return cmd
}
