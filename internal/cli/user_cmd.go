package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/porbotenet-wq/facadeflow/internal/cli/formatter"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

func newUserCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Register users and manage access",
	}
	cmd.AddCommand(
		newUserRegisterCmd(a),
		newUserListCmd(a),
		newUserActionCmd(a, "approve", "Approve a pending user", "Approved",
			func(ctx context.Context, userID, actorID string) error { return a.Users.Approve(ctx, userID, actorID) }),
		newUserActionCmd(a, "block", "Block a user", "Blocked",
			func(ctx context.Context, userID, actorID string) error { return a.Users.Block(ctx, userID, actorID) }),
		newUserActionCmd(a, "unblock", "Unblock a user", "Unblocked",
			func(ctx context.Context, userID, actorID string) error { return a.Users.Unblock(ctx, userID, actorID) }),
		newUserSetCmd(a),
	)
	return cmd
}

func newUserRegisterCmd(a *App) *cobra.Command {
	var (
		name      string
		bootstrap bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the acting telegram id",
		Long: `Register the telegram id given by --as. New users wait for an
administrator's approval. --bootstrap makes the caller the first active
administrator while no user is active yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			register := a.Users.Register
			if bootstrap {
				register = a.Users.Bootstrap
			}
			u, err := register(ctx, a.actor(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s · %s\n", formatter.UserStatusPill(u.Status), formatter.Bold(u.FullName), u.RoleLabel())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name (required)")
	cmd.Flags().BoolVar(&bootstrap, "bootstrap", false, "become the first administrator")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newUserListCmd(a *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.adminSession(ctx); err != nil {
				return err
			}
			users, err := a.Users.List(ctx, domain.UserStatus(status))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUserList(users))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (PENDING, ACTIVE, BLOCKED)")
	return cmd
}

func newUserActionCmd(a *App, use, short, verb string, action func(ctx context.Context, userID, actorID string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " USER",
		Short: short + " (admin)",
		Long:  "USER is a user ID or a telegram id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.adminSession(ctx)
			if err != nil {
				return err
			}
			target, err := resolveUserID(ctx, a, args[0])
			if err != nil {
				return err
			}
			if err := action(ctx, target.ID, s.User.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, target.FullName)
			return nil
		},
	}
}

func newUserSetCmd(a *App) *cobra.Command {
	var role, department string

	cmd := &cobra.Command{
		Use:   "set USER",
		Short: "Change a user's role or department (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			roleSet, deptSet := cmd.Flags().Changed("role"), cmd.Flags().Changed("department")
			if !roleSet && !deptSet {
				return fmt.Errorf("nothing to change: use --role or --department")
			}
			s, err := a.adminSession(ctx)
			if err != nil {
				return err
			}
			target, err := resolveUserID(ctx, a, args[0])
			if err != nil {
				return err
			}
			if roleSet {
				if err := a.Users.SetRole(ctx, target.ID, domain.Role(role), s.User.ID); err != nil {
					return err
				}
			}
			if deptSet {
				if err := a.Users.SetDepartment(ctx, target.ID, department, s.User.ID); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", target.FullName)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "ADMIN, MANAGER, ENGINEER, WORKER or VIEWER; empty clears")
	cmd.Flags().StringVar(&department, "department", "", "department name; empty clears")
	return cmd
}
