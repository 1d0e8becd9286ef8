package invite

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/MrEthical07/pmAuth/permission"
)

// Creator issues an invite and returns its path.
type Creator interface {
	CreateInvite(ctx context.Context, email string, role permission.Role) (string, error)
}

// Issuer creates invites on behalf of an administrator.
//
// Issuer holds no invite state; each Create is independent. Only one Create
// may be pending at a time.
type Issuer struct {
	origin  string
	backend Creator
	busy    atomic.Bool
}

// NewIssuer returns an Issuer composing links against origin.
func NewIssuer(origin string, backend Creator) *Issuer {
	return &Issuer{origin: origin, backend: backend}
}

type inviteRequest struct {
	Email string
	Role  permission.Role
}

func (r inviteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Role, validation.Required, validation.By(validRole)),
	)
}

func validRole(value interface{}) error {
	if r, ok := value.(permission.Role); ok && r.IsValid() {
		return nil
	}
	return permission.ErrRoleInvalid
}

// Create describes the create operation and its observable behavior.
//
// Create validates email and role locally, requests an invite, and composes
// the shareable link. On any failure it returns no partial link.
func (i *Issuer) Create(ctx context.Context, email string, role permission.Role) (Link, error) {
	req := inviteRequest{Email: strings.TrimSpace(email), Role: role}
	if err := req.Validate(); err != nil {
		return Link{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if !i.busy.CompareAndSwap(false, true) {
		return Link{}, ErrSubmitInFlight
	}
	defer i.busy.Store(false)

	path, err := i.backend.CreateInvite(ctx, req.Email, req.Role)
	if err != nil {
		return Link{}, err
	}

	return Link{
		Path:  path,
		URL:   ComposeLink(i.origin, path),
		Token: TokenFromURL(path),
	}, nil
}
