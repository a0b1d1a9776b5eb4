package formatter

import (
	"fmt"
	"strings"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

// FormatPlanFact renders daily reports newest first with their totals.
func FormatPlanFact(r *service.PlanFactReport) string {
	if len(r.Rows) == 0 {
		return Dim("No plan-fact reports.") + "\n"
	}
	headers := []string{"DATE", "MODULES P/F", "BRACKETS P/F", "SEALANT P/F", "HERMETIC P/F", "NOTES"}
	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []string{
			domain.FormatDate(row.ReportDate),
			Quantity(row.ModulesPlan) + " / " + Quantity(row.ModulesFact),
			Quantity(row.BracketsPlan) + " / " + Quantity(row.BracketsFact),
			Quantity(row.SealantPlan) + " / " + Quantity(row.SealantFact),
			Quantity(row.HermeticPlan) + " / " + Quantity(row.HermeticFact),
			Truncate(row.Notes, 30),
		})
	}
	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	fmt.Fprintf(&b, "\n%s modules %s / %s · brackets %s / %s\n", Bold("Total"),
		trimFloat(r.Totals.ModulesPlan), trimFloat(r.Totals.ModulesFact),
		trimFloat(r.Totals.BracketsPlan), trimFloat(r.Totals.BracketsFact))
	return b.String()
}

// FormatFacades renders facade progress per modules and brackets.
func FormatFacades(o *service.FacadeOverview) string {
	if len(o.Facades) == 0 {
		return Dim("No facades.") + "\n"
	}
	headers := []string{"FACADE", "STATUS", "MODULES", "", "BRACKETS", ""}
	rows := make([][]string, 0, len(o.Facades))
	for _, f := range o.Facades {
		rows = append(rows, []string{
			Bold(f.Name),
			string(f.Status),
			fmt.Sprintf("%d/%d", f.ModulesFact, f.ModulesPlan),
			RenderProgress(f.ModulesPct(), 10),
			fmt.Sprintf("%d/%d", f.BracketsFact, f.BracketsPlan),
			RenderProgress(f.BracketsPct(), 10),
		})
	}
	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	fmt.Fprintf(&b, "\n%s modules %d/%d · brackets %d/%d\n", Bold("Total"),
		o.Totals.ModulesFact, o.Totals.ModulesPlan, o.Totals.BracketsFact, o.Totals.BracketsPlan)
	return b.String()
}
