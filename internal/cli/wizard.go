package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/porbotenet-wq/facadeflow/internal/cli/formatter"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

func facadeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// objectWizard holds the raw answers of the object creation form. Numbers
// and dates stay strings until input() converts them.
type objectWizard struct {
	Name             string
	CustomerName     string
	CustomerAddress  string
	CustomerContacts string
	ContractorName   string
	WorkTypes        []domain.WorkType
	Volume           string
	ContractDate     string
	StartDate        string
	EndDate          string
	Duration         string
	ProjectManager   string
}

// form builds the three-step creation form: customer, scope, dates.
func (w *objectWizard) form() *huh.Form {
	workTypes := []huh.Option[domain.WorkType]{
		huh.NewOption(domain.WorkTypeNVF.Label(), domain.WorkTypeNVF),
		huh.NewOption(domain.WorkTypeSPK.Label(), domain.WorkTypeSPK),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Object name").Value(&w.Name).Validate(requiredText("object name")),
			huh.NewInput().Title("Customer").Value(&w.CustomerName),
			huh.NewInput().Title("Customer address").Value(&w.CustomerAddress),
			huh.NewInput().Title("Customer contacts").Value(&w.CustomerContacts),
			huh.NewInput().Title("Contractor").Value(&w.ContractorName),
		).Title("Customer"),
		huh.NewGroup(
			huh.NewMultiSelect[domain.WorkType]().
				Title("Work types").
				Options(workTypes...).
				Value(&w.WorkTypes).
				Validate(func(v []domain.WorkType) error {
					if len(v) == 0 {
						return fmt.Errorf("select at least one work type")
					}
					return nil
				}),
			huh.NewInput().Title("Total facade area, m²").Placeholder("0").Value(&w.Volume).Validate(optionalFloat),
			huh.NewInput().Title("Project manager").Value(&w.ProjectManager),
		).Title("Scope"),
		huh.NewGroup(
			huh.NewInput().Title("Contract date").Placeholder("YYYY-MM-DD").
				Description("Deadlines count from this date, or from the start date when empty.").
				Value(&w.ContractDate).Validate(optionalDate),
			huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(&w.StartDate).Validate(optionalDate),
			huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&w.EndDate).Validate(optionalDate),
			huh.NewInput().Title("Duration, days").Value(&w.Duration).Validate(optionalInt),
		).Title("Dates"),
	).WithTheme(facadeHuhTheme()).WithShowHelp(false)
}

// input converts the answers to a creation request for projectID.
func (w *objectWizard) input(projectID, createdBy string) (service.CreateObjectInput, error) {
	in := service.CreateObjectInput{
		ProjectID:        projectID,
		Name:             strings.TrimSpace(w.Name),
		CustomerName:     strings.TrimSpace(w.CustomerName),
		CustomerAddress:  strings.TrimSpace(w.CustomerAddress),
		CustomerContacts: strings.TrimSpace(w.CustomerContacts),
		ContractorName:   strings.TrimSpace(w.ContractorName),
		WorkTypes:        w.WorkTypes,
		ContractDate:     strings.TrimSpace(w.ContractDate),
		StartDate:        strings.TrimSpace(w.StartDate),
		EndDate:          strings.TrimSpace(w.EndDate),
		ProjectManager:   strings.TrimSpace(w.ProjectManager),
		CreatedBy:        createdBy,
	}
	if v := strings.TrimSpace(w.Volume); v != "" {
		f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
		if err != nil {
			return in, fmt.Errorf("%w: area %q is not a number", domain.ErrValidation, v)
		}
		in.TotalVolumeM2 = f
	}
	if v := strings.TrimSpace(w.Duration); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("%w: duration %q is not a number", domain.ErrValidation, v)
		}
		in.DurationDays = &d
	}
	return in, nil
}

func requiredText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func optionalFloat(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if f < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func optionalInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a whole number of days")
	}
	return nil
}

func optionalDate(s string) error {
	if _, err := domain.ParseOptionalDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}
