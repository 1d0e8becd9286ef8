package invite

import (
	"context"
	"fmt"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/MrEthical07/pmAuth/permission"
)

// DefaultMinPasswordLength is the client-side registration password gate.
const DefaultMinPasswordLength = 6

// DefaultLoginPath is where a completed registration forwards the user.
const DefaultLoginPath = "/login"

// Phase is the redemption state.
type Phase int

const (
	PhaseChecking Phase = iota
	PhaseNoToken
	PhaseInvalid
	PhaseValid
	PhaseRegistered
)

func (p Phase) String() string {
	switch p {
	case PhaseChecking:
		return "CHECKING"
	case PhaseNoToken:
		return "NO_TOKEN"
	case PhaseInvalid:
		return "INVALID"
	case PhaseValid:
		return "VALID"
	case PhaseRegistered:
		return "REGISTERED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseNoToken || p == PhaseInvalid || p == PhaseRegistered
}

// Details is the outcome of validating an invite.
type Details struct {
	Valid bool
	Email string
	Role  permission.Role
}

// Checker validates an invite token without consuming it.
type Checker interface {
	ValidateInvite(ctx context.Context, token string) (Details, error)
}

// Registrar consumes an invite token by registering an account.
type Registrar interface {
	Register(ctx context.Context, token, name, password string) error
}

// Backend is the pair of calls a Redemption needs.
type Backend interface {
	Checker
	Registrar
}

// State is a snapshot of a Redemption.
type State struct {
	Phase Phase
	// Email and Role are the invite's binding. They are set from VALID on and
	// cannot be changed by the registrant.
	Email string
	Role  permission.Role
	// Err is the last registration failure while in VALID.
	Err error
	// Submitting is true while a registration request is pending.
	Submitting bool
	// NextRoute is the login entry once REGISTERED.
	NextRoute string
}

// Invalid reports whether the flow ended in the generic invalid-invite
// outcome. NO_TOKEN and INVALID render identically.
func (s State) Invalid() bool {
	return s.Phase == PhaseNoToken || s.Phase == PhaseInvalid
}

// RedemptionOptions configures a Redemption.
type RedemptionOptions struct {
	MinPasswordLength int
	LoginPath         string
}

// Redemption validates an invite and then registers against it.
//
// A Redemption is used for one token. It is safe for concurrent use; a
// submission made while another is pending fails with ErrSubmitInFlight.
type Redemption struct {
	token   string
	backend Backend
	opts    RedemptionOptions

	mu     sync.Mutex
	state  State
	loaded bool
	closed bool
}

// NewRedemption returns a flow for token. An empty token starts, and stays, in
// NO_TOKEN.
func NewRedemption(token string, backend Backend, opts RedemptionOptions) *Redemption {
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = DefaultMinPasswordLength
	}
	if opts.LoginPath == "" {
		opts.LoginPath = DefaultLoginPath
	}

	r := &Redemption{
		token:   strings.TrimSpace(token),
		backend: backend,
		opts:    opts,
		state:   State{Phase: PhaseChecking},
	}
	if r.token == "" {
		r.state.Phase = PhaseNoToken
		r.loaded = true
	}
	return r
}

// Load validates the token once. Later calls return the current state.
//
// Any validation failure, including transport errors, resolves to INVALID.
func (r *Redemption) Load(ctx context.Context) (State, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return State{}, ErrFlowClosed
	}
	if r.loaded {
		st := r.state
		r.mu.Unlock()
		return st, nil
	}
	r.loaded = true
	r.mu.Unlock()

	details, err := r.backend.ValidateInvite(ctx, r.token)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return State{}, ErrFlowClosed
	}
	if err != nil || !details.Valid || !details.Role.IsValid() {
		r.state = State{Phase: PhaseInvalid}
		return r.state, nil
	}
	r.state = State{Phase: PhaseValid, Email: details.Email, Role: details.Role}
	return r.state, nil
}

type registration struct {
	Name     string
	Password string
}

// Submit registers name and password against the invite.
//
// On success the flow is REGISTERED and NextRoute names the login entry; no
// session is created. On failure the flow stays VALID with Err set and may be
// resubmitted. The token is not re-validated first.
func (r *Redemption) Submit(ctx context.Context, name, password string) (State, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return State{}, ErrFlowClosed
	}
	if r.state.Phase != PhaseValid {
		st := r.state
		r.mu.Unlock()
		return st, ErrNotRedeemable
	}
	if r.state.Submitting {
		st := r.state
		r.mu.Unlock()
		return st, ErrSubmitInFlight
	}

	reg := registration{Name: strings.TrimSpace(name), Password: password}
	if err := validation.ValidateStruct(&reg,
		validation.Field(&reg.Name, validation.Required),
		validation.Field(&reg.Password, validation.Required, validation.Length(r.opts.MinPasswordLength, 0)),
	); err != nil {
		r.state.Err = fmt.Errorf("%w: %w", ErrInvalidInput, err)
		st := r.state
		r.mu.Unlock()
		return st, st.Err
	}

	r.state.Submitting = true
	r.state.Err = nil
	r.mu.Unlock()

	err := r.backend.Register(ctx, r.token, reg.Name, reg.Password)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Submitting = false
	if r.closed {
		return State{}, ErrFlowClosed
	}
	if err != nil {
		r.state.Err = err
		return r.state, err
	}
	r.state.Phase = PhaseRegistered
	r.state.NextRoute = r.opts.LoginPath
	return r.state, nil
}

// State returns the current snapshot.
func (r *Redemption) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Close detaches the flow. Responses arriving afterwards are discarded.
func (r *Redemption) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}
