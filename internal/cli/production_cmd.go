package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/porbotenet-wq/facadeflow/internal/cli/formatter"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

func newPlanFactCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planfact",
		Short: "Daily planned versus actual production",
	}
	cmd.AddCommand(newPlanFactListCmd(a), newPlanFactAddCmd(a))
	return cmd
}

func newPlanFactListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list OBJECT",
		Short: "List the latest daily reports with totals",
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
			report, err := a.PlanFact.List(ctx, objectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanFact(report))
			return nil
		},
	}
}

// quantityFlags are the plan/fact pairs of a daily report.
var quantityFlags = []string{
	"modules-plan", "modules-fact",
	"brackets-plan", "brackets-fact",
	"sealant-plan", "sealant-fact",
	"hermetic-plan", "hermetic-fact",
}

func newPlanFactAddCmd(a *App) *cobra.Command {
	var (
		date, week, notes string
		day               int
	)

	cmd := &cobra.Command{
		Use:   "add OBJECT",
		Short: "Record a daily report",
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

			reportDate := domain.Today(a.now())
			if date != "" {
				if reportDate, err = domain.ParseDate(date); err != nil {
					return err
				}
			}
			row := &domain.PlanFactDaily{
				ObjectID:   objectID,
				ReportDate: reportDate,
				Week:       week,
				Notes:      notes,
			}
			if cmd.Flags().Changed("day") {
				row.DayNumber = &day
			}
			q := changedFloats(cmd.Flags(), quantityFlags)
			row.ModulesPlan, row.ModulesFact = q["modules-plan"], q["modules-fact"]
			row.BracketsPlan, row.BracketsFact = q["brackets-plan"], q["brackets-fact"]
			row.SealantPlan, row.SealantFact = q["sealant-plan"], q["sealant-fact"]
			row.HermeticPlan, row.HermeticFact = q["hermetic-plan"], q["hermetic-fact"]

			if err := a.PlanFact.Report(ctx, row, s.User.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded report for %s\n", domain.FormatDate(row.ReportDate))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&date, "date", "", "report date (YYYY-MM-DD, default today)")
	f.StringVar(&week, "week", "", "week label")
	f.IntVar(&day, "day", 0, "day number within the week")
	f.StringVar(&notes, "notes", "", "free-form notes")
	for _, name := range quantityFlags {
		f.Float64(name, 0, strings.ReplaceAll(name, "-", " "))
	}
	return cmd
}

// changedFloats returns the values of the float flags the caller set.
// Unset flags stay absent so the report keeps them empty.
func changedFloats(fs *pflag.FlagSet, names []string) map[string]*float64 {
	out := make(map[string]*float64, len(names))
	for _, name := range names {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetFloat64(name)
		if err != nil {
			continue
		}
		out[name] = &v
	}
	return out
}

func newFacadeCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facade",
		Short: "Facades of an object and their mounting progress",
	}
	cmd.AddCommand(newFacadeListCmd(a), newFacadeAddCmd(a))
	return cmd
}

func newFacadeListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list OBJECT",
		Short: "List facades with module and bracket progress",
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
			overview, err := a.Facades.List(ctx, objectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFacades(overview))
			return nil
		},
	}
}

func newFacadeAddCmd(a *App) *cobra.Command {
	var f domain.Facade

	cmd := &cobra.Command{
		Use:   "add OBJECT",
		Short: "Add a facade to an object",
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
			facade := f
			facade.ObjectID = objectID
			if err := a.Facades.Create(ctx, &facade); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added facade %s\n", formatter.Bold(facade.Name))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.Name, "name", "", "facade name (required)")
	fl.IntVar(&f.SortOrder, "order", 0, "sort order")
	fl.IntVar(&f.ModulesPlan, "modules-plan", 0, "planned modules")
	fl.IntVar(&f.ModulesFact, "modules-fact", 0, "mounted modules")
	fl.IntVar(&f.BracketsPlan, "brackets-plan", 0, "planned brackets")
	fl.IntVar(&f.BracketsFact, "brackets-fact", 0, "mounted brackets")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
