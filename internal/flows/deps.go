package flows

import (
	"context"

	"github.com/MrEthical07/pmAuth/internal/transport"
	"github.com/MrEthical07/pmAuth/session"
)

// ErrMalformedResponse is returned when a 2xx body does not carry what the
// contract promises.
var ErrMalformedResponse = transport.ErrMalformedResponse

// Caller performs one JSON round trip. *transport.Client implements it.
type Caller interface {
	Do(ctx context.Context, method, path string, in, out any) error
}

// LoginStore receives the authenticated pair.
type LoginStore interface {
	Login(ctx context.Context, token string, user session.User) error
}

// Backend routes, relative to the API base.
const (
	PathLogin          = "/auth/login"
	PathInvite         = "/auth/invite"
	PathValidateInvite = "/auth/validate-invite"
	PathRegister       = "/auth/register"
	PathUsers          = "/users"
)

// Deps groups flow dependency sets. The Client builds this once and delegates
// each operation to the matching flow.
type Deps struct {
	Auth   AuthDeps
	Invite InviteDeps
	Users  UsersDeps
}
