package pmAuth

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	internalaudit "github.com/MrEthical07/pmAuth/internal/audit"
	"github.com/MrEthical07/pmAuth/internal/flows"
	"github.com/MrEthical07/pmAuth/internal/transport"
	"github.com/MrEthical07/pmAuth/invite"
	"github.com/MrEthical07/pmAuth/router"
	"github.com/MrEthical07/pmAuth/session"
)

// Client defines a public type used by pmAuth APIs.
//
// Client owns exactly one session. It is created by [Builder.Build] and torn
// down with Close.
type Client struct {
	config       Config
	store        *session.Store
	closeBackend func() error
	http         *transport.Client
	deps         flows.Deps
	issuer       *invite.Issuer
	routes       *router.Table
	audit        *internalaudit.Dispatcher
	metrics      *Metrics
	logger       *log.Logger

	loginBusy atomic.Bool
	closed    atomic.Bool
}

// Initialize describes the initialize operation and its observable behavior.
//
// Initialize restores a persisted session. Gated operations and navigation
// report pending until it returns. Restore failures resolve to an empty
// session and are never returned.
func (c *Client) Initialize(ctx context.Context) session.Session {
	sess := c.store.Initialize(ctx)
	if sess.Authenticated() {
		c.metricInc(MetricSessionRestored)
		c.emitAudit(ctx, auditEventSessionRestored, true, sess.User.ID, sess.User.Email, nil, nil)
	}
	return sess
}

// Session returns a read-only snapshot of the current session.
func (c *Client) Session() session.Session {
	return c.store.Snapshot()
}

type loginInput struct {
	Email    string
	Password string
}

// Login describes the login operation and its observable behavior.
//
// Login authenticates against the backend and, on success, installs token and
// user together. On failure the session is left as it was. Only one Login may
// be pending at a time.
func (c *Client) Login(ctx context.Context, email, password string) (session.User, error) {
	if c.closed.Load() {
		return session.User{}, ErrClientClosed
	}
	ctx = ensureRequestID(ctx)

	in := loginInput{Email: strings.TrimSpace(email), Password: password}
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required),
	); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidInput, err)
		c.loginFailed(ctx, in.Email, err)
		return session.User{}, err
	}

	if !c.loginBusy.CompareAndSwap(false, true) {
		return session.User{}, ErrSubmitInFlight
	}
	defer c.loginBusy.Store(false)

	user, err := flows.RunLogin(transport.WithCredentialExchange(ctx), in.Email, in.Password, c.deps.Auth)
	if err != nil {
		c.loginFailed(ctx, in.Email, err)
		return session.User{}, err
	}

	c.metricInc(MetricLoginSuccess)
	c.emitAudit(ctx, auditEventLoginSuccess, true, user.ID, user.Email, nil, func() map[string]string {
		return map[string]string{"role": user.Role.String()}
	})
	return user, nil
}

func (c *Client) loginFailed(ctx context.Context, email string, err error) {
	c.metricInc(MetricLoginFailure)
	c.countRequestFailure(err)
	c.emitAudit(ctx, auditEventLoginFailure, false, "", email, err, nil)
}

// Logout describes the logout operation and its observable behavior.
//
// Logout clears the session and its persisted copy. It is idempotent and
// returns the route the caller should show next.
func (c *Client) Logout(ctx context.Context) string {
	prev := c.store.Snapshot()
	c.store.Logout(ctx)

	if prev.Authenticated() {
		c.metricInc(MetricLogout)
		c.emitAudit(ctx, auditEventLogout, true, prev.User.ID, prev.User.Email, nil, nil)
	}
	return router.PathLogin
}

// onUnauthorized clears the session when the backend rejects its token.
func (c *Client) onUnauthorized(ctx context.Context, token string) {
	prev := c.store.Snapshot()
	if !c.store.InvalidateToken(ctx, token) {
		return
	}
	c.logger.Print("pmAuth: session rejected by backend, cleared")
	c.metricInc(MetricSessionInvalidated)

	var userID, email string
	if prev.User != nil {
		userID, email = prev.User.ID, prev.User.Email
	}
	c.emitAudit(ctx, auditEventSessionInvalidated, true, userID, email, nil, nil)
}

// Navigate evaluates one navigation hop to path against the current session.
func (c *Client) Navigate(path string) router.Result {
	return c.routes.Navigate(c.store.Snapshot(), path)
}

// Open navigates to path and follows redirects.
func (c *Client) Open(path string) router.Result {
	return c.routes.Follow(c.store.Snapshot(), path)
}

// Menu lists the navigation entries the current session may reach.
func (c *Client) Menu() []router.MenuItem {
	return c.routes.Menu(c.store.Snapshot())
}

// MetricsSnapshot returns a point-in-time copy of the client counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped returns how many audit events were dropped on a full buffer.
func (c *Client) AuditDropped() uint64 {
	return c.audit.Dropped()
}

// Close describes the close operation and its observable behavior.
//
// Close flushes pending audit events and releases a backend the client opened
// itself. The session is kept; use Logout to clear it.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.audit.Close()
	if c.closeBackend != nil {
		return c.closeBackend()
	}
	return nil
}

func (c *Client) metricInc(id MetricID) {
	c.metrics.Inc(id)
}

func (c *Client) countRequestFailure(err error) {
	if transport.IsTransportFailure(err) || transport.StatusOf(err) >= 500 {
		c.metricInc(MetricRequestFailure)
	}
}
