package formatter

import (
	"fmt"
	"strings"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

const cardBarWidth = 16

func workTypeLabels(wts []domain.WorkType) string {
	if len(wts) == 0 {
		return Dim("--")
	}
	labels := make([]string, 0, len(wts))
	for _, w := range wts {
		labels = append(labels, string(w))
	}
	return strings.Join(labels, ", ")
}

// FormatObjectList renders objects as a table.
func FormatObjectList(objects []*domain.ConstructionObject) string {
	headers := []string{"ID", "NAME", "CUSTOMER", "TYPES", "CONTRACT", "STATUS"}
	rows := make([][]string, 0, len(objects))
	for _, o := range objects {
		rows = append(rows, []string{
			StyleDim.Render(o.DisplayID()),
			Bold(o.Name),
			domain.CoalesceStr(o.CustomerName, Dim("--")),
			workTypeLabels(o.WorkTypes),
			OptionalDate(o.ContractDate),
			ObjectStatusPill(o.Status),
		})
	}
	return RenderTable(headers, rows)
}

// FormatCreateResult summarises a newly created object.
func FormatCreateResult(res *service.CreateObjectResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Created object %s %s\n", Bold(res.Object.Name), Dim(res.Object.DisplayID()))
	fmt.Fprintf(&b, "  schedule items: %d\n", res.ScheduleItems)
	fmt.Fprintf(&b, "  tasks:          %d (from %s)\n", res.Tasks, domain.FormatDate(res.ReferenceDate))
	return b.String()
}

// FormatObjectCard renders the object card: details, schedule sections,
// task stats and per-block progress.
func FormatObjectCard(c *service.ObjectCard) string {
	o := c.Object
	var details strings.Builder
	fmt.Fprintf(&details, "%s  %s\n", Bold(o.Name), ObjectStatusPill(o.Status))
	fmt.Fprintf(&details, "%s %s\n", Dim("id:      "), o.ID)
	fmt.Fprintf(&details, "%s %s\n", Dim("customer:"), domain.CoalesceStr(o.CustomerName, "--"))
	if o.CustomerAddress != "" {
		fmt.Fprintf(&details, "%s %s\n", Dim("address: "), o.CustomerAddress)
	}
	fmt.Fprintf(&details, "%s %s\n", Dim("types:   "), workTypeLabels(o.WorkTypes))
	if o.TotalVolumeM2 > 0 {
		fmt.Fprintf(&details, "%s %s m²\n", Dim("volume:  "), trimFloat(o.TotalVolumeM2))
	}
	fmt.Fprintf(&details, "%s %s → %s\n", Dim("dates:   "), OptionalDate(o.StartDate), OptionalDate(o.EndDate))
	fmt.Fprintf(&details, "%s %s", Dim("contract:"), OptionalDate(o.ContractDate))

	var b strings.Builder
	b.WriteString(RenderBox("Object "+o.DisplayID(), details.String()))
	b.WriteString("\n\n")

	b.WriteString(Header("Tasks"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  total %d · active %d · %s · done %d\n",
		RenderProgress(c.Tasks.CompletionPct(), cardBarWidth),
		c.Tasks.Total, c.Tasks.Active,
		StyleRed.Render(fmt.Sprintf("overdue %d", c.Tasks.Overdue)),
		c.Tasks.Done)
	if len(c.Blocks) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(c.Blocks))
		for _, bp := range c.Blocks {
			rows = append(rows, []string{
				Hex(bp.Color, "■ ") + bp.Block,
				fmt.Sprintf("%d/%d", bp.Done, bp.Total),
				RenderProgress(bp.Pct(), cardBarWidth),
			})
		}
		b.WriteString(RenderTable([]string{"BLOCK", "DONE", "PROGRESS"}, rows))
	}

	b.WriteString("\n")
	b.WriteString(Header("Work schedule"))
	b.WriteString("\n")
	if c.ScheduleSize == 0 {
		b.WriteString(Dim("No schedule items.") + "\n")
		return b.String()
	}
	items := make([]TreeItem, 0, len(c.Sections))
	for _, s := range c.Sections {
		items = append(items, TreeItem{Title: Bold(s.Name), Detail: fmt.Sprintf("%d/%d", s.Done, len(s.Items))})
		for i, it := range s.Items {
			items = append(items, TreeItem{
				Title:  it.WorkName,
				Level:  1,
				IsLast: i == len(s.Items)-1,
				Marked: it.Status == domain.ScheduleDone,
				Detail: it.Unit,
			})
		}
	}
	b.WriteString(RenderTree(items))
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d of %d schedule items done", c.ScheduleDone, c.ScheduleSize)))
	return b.String()
}
