package cli

import (
	"os"

	"github.com/spf13/cobra"

	pmAuth "github.com/MrEthical07/pmAuth"
)

// EnvPassword supplies the password when --password is not given.
const EnvPassword = "PM_PASSWORD"

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session",
		Long: `Sign in with email and password. The session is stored locally and
reused by later commands until logout or until the backend rejects it.

The password may be given with --password or through $` + EnvPassword + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(EnvPassword)
			}
			return runLogin(rootOpts, cmd, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func runLogin(opts *RootOptions, cmd *cobra.Command, email, password string) error {
	s, done, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer done()

	user, err := s.client.Login(s.ctx, email, password)
	if err != nil {
		return s.fail(err, pmAuth.MessageLoginFailed)
	}
	s.out.VerboseLog("signed in as %s", user.ID)
	return s.out.Success(newWhoamiView(s.client.Session()))
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer done()

			next := s.client.Logout(s.ctx)
			return s.out.Success(messageView{Message: "Signed out. Next: " + next})
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer done()

			return s.out.Success(newWhoamiView(s.client.Session()))
		},
	}
}

// NewOpenCommand creates the open command.
func NewOpenCommand(rootOpts *RootOptions) *cobra.Command {
	var menu bool

	cmd := &cobra.Command{
		Use:   "open [path]",
		Short: "Resolve a client route for the stored session",
		Long: `Resolve a client route the way the web client would, following
redirects. With --menu, list the navigation entries the session may reach.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer done()

			if menu {
				return s.out.Success(menuView(s.client.Menu()))
			}
			target := "/"
			if len(args) == 1 {
				target = args[0]
			}
			return s.out.Success(newNavView(s.client.Open(target)))
		},
	}

	cmd.Flags().BoolVar(&menu, "menu", false, "list reachable menu entries")
	return cmd
}
