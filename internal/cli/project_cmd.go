package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/porbotenet-wq/facadeflow/internal/cli/formatter"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

func newProjectCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the deployment's project",
	}
	cmd.AddCommand(newProjectInitCmd(a), newProjectShowCmd(a))
	return cmd
}

func newProjectInitCmd(a *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "init NAME",
		Short: "Create the project all objects belong to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			existing, err := a.Projects.Current(ctx)
			if err == nil {
				return fmt.Errorf("project %q already exists", existing.Name)
			}
			if !errors.Is(err, service.ErrNotFound) {
				return err
			}

			p, err := a.Projects.Create(ctx, args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", formatter.Bold(p.Name), p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "project description")
	return cmd
}

func newProjectShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the project summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.session(ctx)
			if err != nil {
				return err
			}
			info, err := a.Projects.Info(ctx, s.Project.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectInfo(info))
			return nil
		},
	}
}
