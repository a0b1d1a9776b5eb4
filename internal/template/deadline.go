package template

import "strings"

type deadlineRule struct {
	phrases []string
	days    int
}

// deadlineRules are evaluated in order; the first rule with a phrase contained
// in the lower-cased text wins. Order matters where phrases contain one
// another: "2-3 дня" contains "3 дня", so its rule comes first, and
// "двое суток" shadows "за двое суток".
var deadlineRules = []deadlineRule{
	{phrases: []string{"сутки с момента подписания", "дата подписания"}, days: 1},
	{phrases: []string{"двое суток"}, days: 2},
	{phrases: []string{"2 дня"}, days: 2},
	{phrases: []string{"2-3 дня"}, days: 3},
	{phrases: []string{"3 дня"}, days: 3},
	{phrases: []string{"1 день"}, days: 1},
	{phrases: []string{"за 7 дней"}, days: 7},
	{phrases: []string{"за сутки"}, days: 1},
	{phrases: []string{"за двое суток"}, days: 2},
	{phrases: []string{"в течение суток"}, days: 1},
	{phrases: []string{"заблаговременно"}, days: 0},
}

// ResolveDeadline maps a free-text deadline to a day offset. ok is false when
// no rule matches, which is not an error: the task simply gets no planned date.
func ResolveDeadline(text string) (days int, ok bool) {
	if text == "" {
		return 0, false
	}
	lower := strings.ToLower(text)
	for _, r := range deadlineRules {
		for _, p := range r.phrases {
			if strings.Contains(lower, p) {
				return r.days, true
			}
		}
	}
	return 0, false
}
