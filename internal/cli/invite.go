package cli

import (
	"strings"

	"github.com/spf13/cobra"

	pmAuth "github.com/MrEthical07/pmAuth"
	"github.com/MrEthical07/pmAuth/invite"
	"github.com/MrEthical07/pmAuth/permission"
)

// NewInviteCommand creates the invite command group.
func NewInviteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Issue invite links",
	}
	cmd.AddCommand(newInviteCreateCommand(rootOpts))
	return cmd
}

func newInviteCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "create <email>",
		Short: "Create an invite link (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer done()

			link, err := s.client.CreateInvite(s.ctx, args[0], permission.Role(strings.ToUpper(role)))
			if err != nil {
				return s.fail(err, pmAuth.MessageInviteFailed)
			}
			if !s.originSet {
				s.out.VerboseLog("hint: link uses the API host; set PM_API_ORIGIN (api.origin) when the web client is served elsewhere")
			}
			return s.out.Success(newLinkView(link))
		},
	}

	cmd.Flags().StringVar(&role, "role", string(permission.RoleStaff), "role granted by the invite (ADMIN|MANAGER|STAFF)")
	return cmd
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	var name, password string
	var check bool

	cmd := &cobra.Command{
		Use:   "register <invite-link-or-token>",
		Short: "Redeem an invite",
		Long: `Validate an invite and create the account it grants. Registration
does not sign in; run login afterwards. With --check the invite is only
validated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer done()

			token := args[0]
			if strings.Contains(token, "token=") {
				token = invite.TokenFromURL(token)
			}
			flow := s.client.NewRedemption(token)
			defer flow.Close()

			st, err := flow.Load(s.ctx)
			if err != nil {
				return s.fail(err, pmAuth.MessageInviteInvalid)
			}
			if st.Invalid() {
				return s.fail(pmAuth.ErrInviteInvalid, pmAuth.MessageInviteInvalid)
			}
			s.out.VerboseLog("invite for %s as %s", st.Email, st.Role)
			if check {
				return s.out.Success(newRedemptionView(st))
			}

			st, err = flow.Submit(s.ctx, name, password)
			if err != nil {
				return s.fail(err, pmAuth.MessageRegistrationFailed)
			}
			return s.out.Success(newRedemptionView(st))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.Flags().BoolVar(&check, "check", false, "only validate the invite")
	return cmd
}
