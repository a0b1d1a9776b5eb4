package formatter

import (
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

// FormatUserList renders users with their role and department.
func FormatUserList(users []*domain.User) string {
	headers := []string{"TELEGRAM", "NAME", "ROLE", "DEPARTMENT", "STATUS", "ID"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			StyleDim.Render(formatTelegramID(u.TelegramID)),
			Bold(u.FullName),
			domain.CoalesceStr(string(u.Role), Dim("--")),
			domain.CoalesceStr(u.Department, Dim("--")),
			UserStatusPill(u.Status),
			TruncID(u.ID),
		})
	}
	return RenderTable(headers, rows)
}
