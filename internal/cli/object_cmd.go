package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/porbotenet-wq/facadeflow/internal/cli/formatter"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

func newObjectCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "object",
		Aliases: []string{"obj"},
		Short:   "Manage construction objects",
	}
	cmd.AddCommand(
		newObjectCreateCmd(a),
		newObjectListCmd(a),
		newObjectShowCmd(a),
		newObjectStatusCmd(a),
		newObjectMaterializeCmd(a),
	)
	return cmd
}

func newObjectCreateCmd(a *App) *cobra.Command {
	var (
		w           objectWizard
		workTypes   []string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an object with its work schedule and workflow tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.session(ctx)
			if err != nil {
				return err
			}

			for _, wt := range workTypes {
				w.WorkTypes = append(w.WorkTypes, domain.WorkType(strings.ToUpper(strings.TrimSpace(wt))))
			}
			if interactive {
				if !a.interactive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				if err := a.runForm(w.form()); err != nil {
					return err
				}
			}

			in, err := w.input(s.Project.ID, s.User.ID)
			if err != nil {
				return err
			}
			res, err := a.Objects.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCreateResult(res))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&w.Name, "name", "", "object name")
	f.StringVar(&w.CustomerName, "customer", "", "customer name")
	f.StringVar(&w.CustomerAddress, "address", "", "customer address")
	f.StringVar(&w.CustomerContacts, "contacts", "", "customer contacts")
	f.StringVar(&w.ContractorName, "contractor", "", "contractor name")
	f.StringSliceVar(&workTypes, "type", nil, "work type, НВФ or СПК (repeatable)")
	f.StringVar(&w.Volume, "volume", "", "total facade area, m²")
	f.StringVar(&w.ContractDate, "contract-date", "", "contract signing date (YYYY-MM-DD)")
	f.StringVar(&w.StartDate, "start", "", "start date (YYYY-MM-DD)")
	f.StringVar(&w.EndDate, "end", "", "end date (YYYY-MM-DD)")
	f.StringVar(&w.Duration, "duration", "", "duration in days")
	f.StringVar(&w.ProjectManager, "manager", "", "project manager")
	f.BoolVarP(&interactive, "interactive", "i", false, "fill the fields in a form")
	return cmd
}

func newObjectListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List objects of the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.session(ctx)
			if err != nil {
				return err
			}
			s, err = a.loader().LoadObjects(ctx, s)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatObjectList(s.Objects))
			return nil
		},
	}
}

func newObjectShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show OBJECT",
		Short: "Show the object card: schedule sections and block progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.session(ctx)
			if err != nil {
				return err
			}
			_, objectID, err := resolveObjectID(ctx, a, s, args[0])
			if err != nil {
				return err
			}
			card, err := a.Objects.Card(ctx, objectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatObjectCard(card))
			return nil
		},
	}
}

func newObjectStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status OBJECT STATUS",
		Short: "Set the object status (NEW, IN_PROGRESS, PAUSED, COMPLETED, CANCELLED)",
		Args:  cobra.ExactArgs(2),
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
			status := domain.ObjectStatus(strings.ToUpper(args[1]))
			if err := a.Objects.UpdateStatus(ctx, objectID, status, s.User.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.ObjectStatusPill(status), s.Object(objectID).Name)
			return nil
		},
	}
}

func newObjectMaterializeCmd(a *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "materialize OBJECT",
		Short: "Create the workflow tasks of an object again",
		Long: `Create the workflow tasks of an object from the process template.
Objects that already have tasks are refused; --force appends a second set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.session(ctx)
			if err != nil {
				return err
			}
			_, objectID, err := resolveObjectID(ctx, a, s, args[0])
			if err != nil {
				return err
			}
			n, err := a.Objects.MaterializeTasks(ctx, objectID, force, s.User.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d tasks\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "append tasks even if the object already has some")
	return cmd
}
