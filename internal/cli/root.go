package cli

import (
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/porbotenet-wq/facadeflow/internal/app"
	"github.com/porbotenet-wq/facadeflow/internal/config"
	"github.com/porbotenet-wq/facadeflow/internal/observability"
)

// App holds the services and process settings used by CLI commands.
type App struct {
	*app.App

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics

	// Now is the clock used for overdue markers. Defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin and stdout are a terminal.
	IsInteractive func() bool
	// RunForm and RunProgram drive huh forms and bubbletea programs.
	// Tests replace them to avoid a terminal.
	RunForm    func(f *huh.Form) error
	RunProgram func(m tea.Model) error

	// actingAs is set by --as; zero means the configured CLI identity.
	actingAs int64
}

// actor returns the telegram id commands act as.
func (a *App) actor() int64 {
	if a.actingAs != 0 || a.Config == nil {
		return a.actingAs
	}
	return a.Config.CLI.TelegramID
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCmd creates the top-level "facadeflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "facadeflow",
		Short:         "Facade construction workflow tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "path to the YAML config file (env "+config.EnvConfigPath+")")
	root.PersistentFlags().Int64Var(&a.actingAs, "as", 0, "telegram id of the acting user (default cli.telegram_id)")

	root.AddCommand(
		newServeCmd(a),
		newProjectCmd(a),
		newUserCmd(a),
		newObjectCmd(a),
		newTaskCmd(a),
		newWorkflowCmd(a),
		newGPRCmd(a),
		newDashboardCmd(a),
		newGanttCmd(a),
		newPlanFactCmd(a),
		newFacadeCmd(a),
	)
	return root
}

// ConfigFlag extracts --config from args before the command tree exists,
// since the services are built from the loaded config. Unknown flags are
// left for cobra.
func ConfigFlag(args []string) string {
	fs := pflag.NewFlagSet("facadeflow", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	fs.BoolP("help", "h", false, "")
	_ = fs.Parse(args)
	return *path
}
