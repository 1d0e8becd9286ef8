package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pmAuth "github.com/MrEthical07/pmAuth"
	"github.com/MrEthical07/pmAuth/permission"
)

// NewUsersCommand creates the users command group. Every subcommand is admin only.
func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin only)",
	}
	cmd.AddCommand(newUsersListCommand(rootOpts))
	cmd.AddCommand(newUsersRoleCommand(rootOpts))
	cmd.AddCommand(newUsersStatusCommand(rootOpts))
	cmd.AddCommand(newUsersToggleCommand(rootOpts))
	return cmd
}

func newUsersListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer done()

			users, err := s.client.ListUsers(s.ctx)
			if err != nil {
				return s.fail(err, pmAuth.MessageLoadUsersFailed)
			}
			view := make(usersView, 0, len(users))
			for _, u := range users {
				view = append(view, newUserView(u))
			}
			return s.out.Success(view)
		},
	}
}

func newUsersRoleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "role <user-id> <role>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer done()

			role := permission.Role(strings.ToUpper(args[1]))
			if err := s.client.ChangeUserRole(s.ctx, args[0], role); err != nil {
				return s.fail(err, pmAuth.MessageRoleUpdateFailed)
			}
			return s.out.Success(messageView{Message: fmt.Sprintf("%s is now %s", args[0], role)})
		},
	}
}

func newUsersStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <user-id> <ACTIVE|INACTIVE>",
		Short: "Set a user's account status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer done()

			status := permission.AccountStatus(strings.ToUpper(args[1]))
			if err := s.client.ChangeUserStatus(s.ctx, args[0], status); err != nil {
				return s.fail(err, pmAuth.MessageStatusUpdateFailed)
			}
			return s.out.Success(messageView{Message: fmt.Sprintf("%s is now %s", args[0], status)})
		},
	}
}

func newUsersToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <user-id>",
		Short: "Flip a user between ACTIVE and INACTIVE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer done()

			users, err := s.client.ListUsers(s.ctx)
			if err != nil {
				return s.fail(err, pmAuth.MessageLoadUsersFailed)
			}
			for _, u := range users {
				if u.ID != args[0] {
					continue
				}
				next, err := s.client.ToggleUserStatus(s.ctx, u)
				if err != nil {
					return s.fail(err, pmAuth.MessageStatusUpdateFailed)
				}
				return s.out.Success(messageView{Message: fmt.Sprintf("%s is now %s", u.ID, next)})
			}
			_ = s.out.Error("not_found", "User not found", s.requestID)
			return NewExitError(ExitFailure, "user not found")
		},
	}
}
