package pmAuth

import (
	"context"

	"github.com/MrEthical07/pmAuth/guard"
	"github.com/MrEthical07/pmAuth/internal/flows"
	"github.com/MrEthical07/pmAuth/invite"
	"github.com/MrEthical07/pmAuth/permission"
)

var adminOnly = guard.Roles(permission.RoleAdmin)

// CreateInvite describes the createinvite operation and its observable behavior.
//
// CreateInvite is admin-only. The guard is checked before any request, then
// the input is validated and the returned path composed with the configured
// origin. The session is not touched.
func (c *Client) CreateInvite(ctx context.Context, email string, role permission.Role) (invite.Link, error) {
	if c.closed.Load() {
		return invite.Link{}, ErrClientClosed
	}
	ctx = ensureRequestID(ctx)

	if err := c.checkGate(ctx, adminOnly, "create_invite"); err != nil {
		return invite.Link{}, err
	}

	link, err := c.issuer.Create(ctx, email, role)
	if err != nil {
		c.metricInc(MetricInviteFailure)
		c.countRequestFailure(err)
		c.emitAudit(ctx, auditEventInviteFailure, false, c.actorID(), email, err, nil)
		return invite.Link{}, err
	}

	c.metricInc(MetricInviteCreated)
	c.emitAudit(ctx, auditEventInviteCreated, true, c.actorID(), email, nil, func() map[string]string {
		return map[string]string{"role": role.String()}
	})
	return link, nil
}

// NewRedemption describes the newredemption operation and its observable behavior.
//
// NewRedemption starts a registration flow for token. An empty token yields a
// flow already in NO_TOKEN that makes no requests.
func (c *Client) NewRedemption(token string) *invite.Redemption {
	return invite.NewRedemption(token, inviteBackend{c: c}, invite.RedemptionOptions{
		MinPasswordLength: c.config.Password.MinLength,
		LoginPath:         guard.LoginPath,
	})
}

// RedemptionFromLink starts a registration flow for the token carried by an
// invite link.
func (c *Client) RedemptionFromLink(link string) *invite.Redemption {
	return c.NewRedemption(invite.TokenFromURL(link))
}

func (c *Client) checkGate(ctx context.Context, req guard.Requirement, operation string) error {
	sess := c.store.Snapshot()
	err := guard.Check(sess, req)
	if err == nil {
		return nil
	}
	c.metricInc(MetricAccessDenied)
	c.emitAudit(ctx, auditEventAccessDenied, false, c.actorID(), "", err, func() map[string]string {
		return map[string]string{"operation": operation, "requirement": req.String()}
	})
	return err
}

func (c *Client) actorID() string {
	if u := c.store.Snapshot().User; u != nil {
		return u.ID
	}
	return ""
}

// inviteBackend adapts the client's flows to the invite package interfaces.
type inviteBackend struct {
	c *Client
}

func (b inviteBackend) CreateInvite(ctx context.Context, email string, role permission.Role) (string, error) {
	return flows.RunCreateInvite(ctx, email, role, b.c.deps.Invite)
}

func (b inviteBackend) ValidateInvite(ctx context.Context, token string) (invite.Details, error) {
	c := b.c
	ctx = ensureRequestID(ctx)

	details, err := flows.RunValidateInvite(ctx, token, c.deps.Invite)
	if err != nil || !details.Valid {
		if err == nil {
			err = ErrInviteInvalid
		}
		c.metricInc(MetricInviteInvalid)
		c.countRequestFailure(err)
		c.emitAudit(ctx, auditEventInviteInvalid, false, "", "", err, nil)
		return invite.Details{}, err
	}

	c.metricInc(MetricInviteValidated)
	c.emitAudit(ctx, auditEventInviteValidated, true, "", details.Email, nil, func() map[string]string {
		return map[string]string{"role": details.Role.String()}
	})
	return invite.Details{Valid: true, Email: details.Email, Role: details.Role}, nil
}

func (b inviteBackend) Register(ctx context.Context, token, name, password string) error {
	c := b.c
	ctx = ensureRequestID(ctx)

	if err := flows.RunRegister(ctx, token, name, password, c.deps.Invite); err != nil {
		c.metricInc(MetricRegistrationFailure)
		c.countRequestFailure(err)
		c.emitAudit(ctx, auditEventRegistrationFailure, false, "", "", err, nil)
		return err
	}

	c.metricInc(MetricRegistrationSuccess)
	c.emitAudit(ctx, auditEventRegistrationSuccess, true, "", "", nil, nil)
	return nil
}
