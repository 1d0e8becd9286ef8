package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	pmAuth "github.com/MrEthical07/pmAuth"
	"github.com/MrEthical07/pmAuth/internal/config"
	"github.com/MrEthical07/pmAuth/metrics/export/prometheus"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Metrics    bool // print client metrics to stderr after the command
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for pmctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pmctl",
		Short: "pmctl - project manager account client",
		Long: `Sign in to the project manager backend, issue and redeem invites,
and manage user accounts. The session is kept between invocations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $"+config.EnvConfigPath+")")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "print client metrics to stderr after the command")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewOpenCommand(opts))
	cmd.AddCommand(NewInviteCommand(opts))
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewUsersCommand(opts))

	return cmd
}

// invocation is one command run: a built client with its restored session,
// the formatter and the request id shared by every call.
type invocation struct {
	client    *pmAuth.Client
	out       *OutputFormatter
	ctx       context.Context
	requestID string
	// originSet reports whether invite links have an explicit origin.
	originSet bool
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openSession loads configuration and restores the persisted session. The
// returned close func must be called when the command finishes.
func openSession(opts *RootOptions, cmd *cobra.Command) (*invocation, func(), error) {
	out := newFormatter(opts, cmd)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, reportCommandError(out, "load configuration", err)
	}
	if opts.Metrics {
		cfg.Metrics.Enabled = true
		cfg.Metrics.EnableLatencyHistograms = true
	}
	if cfg.Storage.Backend == pmAuth.StorageSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o700); err != nil {
			return nil, nil, reportCommandError(out, "create session directory", err)
		}
	}

	logger := log.New(io.Discard, "", 0)
	if opts.Verbose {
		logger.SetOutput(out.GetErrWriter())
	}

	client, err := pmAuth.New().WithConfig(cfg).WithLogger(logger).Build()
	if err != nil {
		return nil, nil, reportCommandError(out, "build client", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := uuid.NewString()
	ctx = pmAuth.WithRequestID(ctx, requestID)

	client.Initialize(ctx)
	out.VerboseLog("config: base url %s, session store %s", cfg.API.BaseURL, cfg.Storage.Backend)

	s := &invocation{client: client, out: out, ctx: ctx, requestID: requestID, originSet: cfg.API.Origin != ""}
	done := func() {
		if opts.Metrics {
			_, _ = io.WriteString(out.GetErrWriter(), prometheus.NewExporter(client).Render())
		}
		_ = client.Close()
	}
	return s, done, nil
}

func reportCommandError(out *OutputFormatter, message string, err error) error {
	_ = out.Error("command_error", fmt.Sprintf("%s: %v", message, err), "")
	return WrapExitError(ExitCommandError, message, err)
}

// fail reports an operation error with the user-facing text for it.
func (s *invocation) fail(err error, fallback string) error {
	msg := pmAuth.UserMessage(err, fallback)
	_ = s.out.Error(errorCode(err), msg, s.requestID)
	return WrapExitError(ExitFailure, msg, err)
}

func errorCode(err error) string {
	var apiErr *pmAuth.APIError
	switch {
	case errors.Is(err, pmAuth.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, pmAuth.ErrSessionLoading), errors.Is(err, pmAuth.ErrNotAuthenticated):
		return "not_authenticated"
	case errors.Is(err, pmAuth.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, pmAuth.ErrInviteInvalid), errors.Is(err, pmAuth.ErrNotRedeemable):
		return "invite_invalid"
	case errors.Is(err, pmAuth.ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, pmAuth.ErrRequestFailed):
		return "unavailable"
	case errors.As(err, &apiErr):
		if apiErr.Unauthorized() {
			return "unauthorized"
		}
		return "rejected"
	default:
		return "error"
	}
}
