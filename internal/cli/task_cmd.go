package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/porbotenet-wq/facadeflow/internal/cli/formatter"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

func newTaskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Work with the workflow tasks of objects",
	}
	cmd.AddCommand(
		newTaskListCmd(a),
		newTaskStatusCmd(a, "start", "Start a task", domain.TaskInProgress),
		newTaskStatusCmd(a, "done", "Complete a task", domain.TaskDone),
		newTaskStatusCmd(a, "cancel", "Cancel a task", domain.TaskCancelled),
		newTaskAssignCmd(a),
		newTaskMineCmd(a),
	)
	return cmd
}

func newTaskListCmd(a *App) *cobra.Command {
	var (
		f      service.TaskListFilter
		status string
		mine   bool
	)

	cmd := &cobra.Command{
		Use:   "list OBJECT",
		Short: "List the tasks of an object",
		Args:  cobra.ExactArgs(1),
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
			f.Status = domain.TaskStatus(status)
			if mine {
				f.AssignedUserID = s.User.ID
			}
			s, err = a.loader().LoadTasks(ctx, s, objectID, f)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(s.Tasks, a.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (Ожидание, В работе, Выполнено, Отменено)")
	cmd.Flags().StringVar(&f.Department, "department", "", "filter by department")
	cmd.Flags().StringVar(&f.Block, "block", "", "filter by workflow block")
	cmd.Flags().BoolVar(&mine, "mine", false, "only tasks assigned to the acting user")
	return cmd
}

func newTaskStatusCmd(a *App, use, short string, status domain.TaskStatus) *cobra.Command {
	var objectRef string

	cmd := &cobra.Command{
		Use:   use + " TASK",
		Short: short,
		Long:  "TASK is a task ID, or a task number together with --object.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.session(ctx)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, a, s, args[0], objectRef)
			if err != nil {
				return err
			}
			t, err := a.Tasks.ChangeStatus(ctx, taskID, status, s.User.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", formatter.TaskStatusPill(t.Status), t.TaskNumber, t.TaskName)
			return nil
		},
	}

	cmd.Flags().StringVar(&objectRef, "object", "", "object the task number belongs to")
	return cmd
}

func newTaskAssignCmd(a *App) *cobra.Command {
	var (
		objectRef string
		unassign  bool
	)

	cmd := &cobra.Command{
		Use:   "assign TASK [USER]",
		Short: "Assign a task to a user, or clear the assignee",
		Long:  "USER is a user ID or a telegram id. Without USER the acting user takes the task.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.session(ctx)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, a, s, args[0], objectRef)
			if err != nil {
				return err
			}

			var assignee *domain.User
			switch {
			case unassign && len(args) == 2:
				return fmt.Errorf("--clear does not take a USER")
			case unassign:
			case len(args) == 2:
				if assignee, err = resolveUserID(ctx, a, args[1]); err != nil {
					return err
				}
			default:
				assignee = s.User
			}

			var userID *string
			if assignee != nil {
				userID = &assignee.ID
			}
			if err := a.Tasks.Assign(ctx, taskID, userID, s.User.ID); err != nil {
				return err
			}
			t, err := a.Tasks.Get(ctx, taskID)
			if err != nil {
				return err
			}
			if assignee == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s is unassigned\n", t.TaskNumber, t.TaskName)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s → %s\n", t.TaskNumber, t.TaskName, assignee.FullName)
			return nil
		},
	}

	cmd.Flags().StringVar(&objectRef, "object", "", "object the task number belongs to")
	cmd.Flags().BoolVar(&unassign, "clear", false, "remove the assignee")
	return cmd
}

func newTaskMineCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List active tasks assigned to the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.session(ctx)
			if err != nil {
				return err
			}
			tasks, err := a.Tasks.MyActive(ctx, s.User.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, a.now()))
			return nil
		},
	}
}
