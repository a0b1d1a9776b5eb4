package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/porbotenet-wq/facadeflow/internal/cli/formatter"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

func newWorkflowCmd(a *App) *cobra.Command {
	var (
		mine bool
		role string
	)

	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Show the process stages and the steps each role executes",
		Long: `Show the workflow stages. With --mine only the steps the acting user's role
can execute are listed; --role shows the same view for another role name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			roleName := role
			if roleName == "" {
				s, err := a.session(ctx)
				if err != nil {
					return err
				}
				roleName = s.User.RoleName()
			}

			view := a.Workflow.Stages(roleName, mine || role != "")
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", formatter.Title("Workflow",
				formatter.Dim(fmt.Sprintf("%d stages · %d steps · %s", view.StageCount, view.StepCount, roleName))))
			fmt.Fprint(out, formatter.FormatWorkflow(view.Stages, roleName))
			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "only steps the acting user can execute")
	cmd.Flags().StringVar(&role, "role", "", "show steps for this role name instead")
	return cmd
}

func newGPRCmd(a *App) *cobra.Command {
	var workType string

	cmd := &cobra.Command{
		Use:   "gpr",
		Short: "List the work schedule catalog (ГПР)",
		RunE: func(cmd *cobra.Command, args []string) error {
			wt := domain.WorkType(strings.ToUpper(strings.TrimSpace(workType)))
			if wt != "" && !wt.Selectable() {
				return fmt.Errorf("%w: unknown work type %q", domain.ErrValidation, workType)
			}
			items := a.Workflow.GPR(wt)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGPR(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&workType, "type", "", "only items of this work type (НВФ or СПК)")
	return cmd
}

func newDashboardCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show task and object counters for the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.session(ctx)
			if err != nil {
				return err
			}
			stats, err := a.Dashboard.Stats(ctx, s.Project.ID, s.User.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(s.User, s.Project, stats))
			return nil
		},
	}
}
