package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/porbotenet-wq/facadeflow/internal/cli/formatter"
)

const defaultGanttCols = 60

func newGanttCmd(a *App) *cobra.Command {
	var (
		block       string
		cols        int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "gantt OBJECT",
		Short: "Render the object's tasks on a timeline",
		Long: `Render the tasks of an object as a Gantt chart. Bars are colored by task
status and labels by workflow block. --interactive opens a viewer that
switches between the chart and a board of tasks by status.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.session(ctx)
			if err != nil {
				return err
			}
			s, objectID, err := resolveObjectID(ctx, a, s, args[0])
			if err != nil {
				return err
			}

			if interactive {
				if !a.interactive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				return a.runProgram(newBoardModel(ctx, a, s, objectID, block))
			}

			chart, err := a.Gantt.Build(ctx, objectID, block)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", formatter.Title("Gantt", formatter.Bold(s.Object(objectID).Name)))
			fmt.Fprint(out, formatter.RenderGantt(chart, cols))
			return nil
		},
	}

	cmd.Flags().StringVar(&block, "block", "", "only tasks of this workflow block")
	cmd.Flags().IntVar(&cols, "cols", defaultGanttCols, "timeline width in columns")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the interactive viewer")
	return cmd
}
